package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/oracle-cli/internal/export"
	"github.com/sells-group/oracle-cli/internal/model"
)

var (
	exportOut         string
	exportConcurrency int
	exportNoCache     bool
)

var exportCmd = &cobra.Command{
	Use:   "export TICKER...",
	Short: "Analyze several tickers and write one comparison workbook",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx, exportNoCache)
		if err != nil {
			return err
		}
		defer e.Close()

		concurrency := exportConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Export.MaxConcurrency
		}

		var mu sync.Mutex
		reports := make(map[string]*model.Report, len(args))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, ticker := range args {
			g.Go(func() error {
				report, err := e.Analyzer.Analyze(gctx, ticker)
				if err != nil {
					zap.L().Error("analysis failed, skipping ticker",
						zap.String("ticker", ticker), zap.Error(err))
					return nil
				}
				mu.Lock()
				reports[report.Ticker] = report
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if len(reports) == 0 {
			return fmt.Errorf("no tickers could be analyzed")
		}

		// Stable sheet order regardless of completion order.
		ordered := make([]*model.Report, 0, len(reports))
		for _, r := range reports {
			ordered = append(ordered, r)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Ticker < ordered[j].Ticker })

		out := exportOut
		if out == "" {
			out = filepath.Join(cfg.Export.Dir,
				fmt.Sprintf("oracle-%s.xlsx", time.Now().Format("2006-01-02")))
		}
		if err := export.WriteXLSX(out, ordered); err != nil {
			return err
		}
		fmt.Printf("wrote %d reports to %s\n", len(ordered), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output workbook path")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 0, "max concurrent analyses (default from config)")
	exportCmd.Flags().BoolVar(&exportNoCache, "no-cache", false, "bypass the statement cache")
	rootCmd.AddCommand(exportCmd)
}
