package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/oracle-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "oracle-cli",
	Short: "Buffett-style quality scorecards and fair-value estimates",
	Long:  "Fetches annual financial statements, derives moat, management, debt, and cash metrics, and estimates fair value via Graham number and discounted cash flow.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
