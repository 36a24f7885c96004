package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/sales-dashboard/internal/dataset"
	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/internal/services"
	"github.com/GregMSThompson/sales-dashboard/internal/store"
	"github.com/GregMSThompson/sales-dashboard/pkg/logger"
)

// offlineSession is the session id the CLI runs its single render cycle under.
const offlineSession = "salesctl"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "salesctl",
		Short:        "Offline tools for the sales dashboard",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log := logger.New(logLevel, func(l slog.Level) slog.Handler {
				return logger.NewCloudRunHandlerTo(cmd.ErrOrStderr(), l)
			})
			cmd.SetContext(logger.ToContext(cmd.Context(), log))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newSampleCmd(), newValidateCmd(), newReportCmd())
	return root
}

func newSampleCmd() *cobra.Command {
	var (
		out  string
		days int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the synthetic sample dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds := dataset.GenerateSample(time.Now(), days, seed)
			return writeFile(out, cmd.OutOrStdout(), func(w io.Writer) error {
				return dataset.WriteCSV(w, ds.Records)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&days, "days", dataset.DefaultSampleDays, "days of history before today")
	cmd.Flags().Uint64Var(&seed, "seed", dataset.DefaultSampleSeed, "random seed")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse and validate a CSV, XLSX or XLS sales file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}
			sig := ds.Signature()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:       %s\n", ds.Name)
			fmt.Fprintf(w, "source:     %s\n", sig.SourceID)
			fmt.Fprintf(w, "rows:       %s\n", humanize.Comma(int64(ds.Len())))
			fmt.Fprintf(w, "dropped:    %s\n", humanize.Comma(int64(ds.Dropped)))
			fmt.Fprintf(w, "dates:      %s to %s\n", sig.MinDate, sig.MaxDate)
			fmt.Fprintf(w, "categories: %s\n", strings.Join(sig.Categories, ", "))
			fmt.Fprintf(w, "regions:    %s\n", strings.Join(sig.Regions, ", "))
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var (
		out                string
		start, end         string
		categories, region []string
	)
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Filter a sales file and write the XLSX report",
		Long: `Runs one dashboard render cycle over FILE with the given filters and
writes the resulting report. Filters left unset select everything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(args[0])
			if err != nil {
				return err
			}

			req := dto.RenderRequest{}
			flags := cmd.Flags()
			if flags.Changed("start") {
				req.Start = &start
			}
			if flags.Changed("end") {
				req.End = &end
			}
			if flags.Changed("category") {
				req.Categories = &categories
			}
			if flags.Changed("region") {
				req.Regions = &region
			}

			cache := store.NewDatasetCache(1, 0)
			cache.SetDataset(offlineSession, ds)
			samples := services.NewDatasetService(cache, dataset.DefaultSampleDays, dataset.DefaultSampleSeed)
			dashboard := services.NewDashboardService(store.NewMemorySessionStore(1, 0), cache, samples)

			ctx := cmd.Context()
			plan, err := dashboard.Render(ctx, offlineSession, req)
			if err != nil {
				return err
			}
			if plan.Warning != "" {
				return fmt.Errorf("%s", plan.Warning)
			}

			logger.FromContext(ctx).Info("writing report", "rows", plan.Rows, "out", out)
			return writeFile(out, cmd.OutOrStdout(), func(w io.Writer) error {
				return dashboard.Report(ctx, offlineSession, w)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "sales_report.xlsx", "output file, - for stdout")
	cmd.Flags().StringVar(&start, "start", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last date to include (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "categories to include (repeatable)")
	cmd.Flags().StringSliceVar(&region, "region", nil, "regions to include (repeatable)")
	return cmd
}

func loadFile(path string) (*models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	ds.LoadedAt = time.Now()
	return ds, nil
}

// writeFile writes to path, or to stdout when path is "-".
func writeFile(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
