package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the statement cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		if store == nil {
			fmt.Println("cache is disabled")
			return nil
		}
		defer store.Close()

		st, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("entries: %d (expired: %d)\n", st.Entries, st.Expired)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		if store == nil {
			fmt.Println("cache is disabled")
			return nil
		}
		defer store.Close()

		n, err := store.Prune(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d expired entries\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
