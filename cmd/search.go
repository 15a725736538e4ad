package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Look up ticker symbols by company name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		results, err := e.Analyzer.Search(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-10s %-40s %s\n", r.Symbol, r.Name, r.Exchange)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
