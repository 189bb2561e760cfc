package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/itemsplit/internal/pipeline"
	"github.com/dgallion1/itemsplit/internal/store"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		output      string
		errorLog    string
		concurrency int
		failOnError bool
	)
	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Segment every filing in a directory",
		Long: `Segment every .txt/.htm/.html filing directly inside <input-dir>. Each success
writes <name>.json to the output directory (and/or S3 bucket); each failure is
appended to the error log and the run continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.OutputDir
			}
			sink, err := store.Open(cmd.Context(), output, a.s3Config())
			if err != nil {
				return err
			}
			if sink == nil {
				return errors.New("an output directory (--output or OUTPUT_DIR) or S3_BUCKET is required")
			}

			a.log.Info("starting batch", "input", args[0], "output", output, "threshold", a.opts.Threshold)
			bar := newProgress(cmd.ErrOrStderr())
			report, err := pipeline.RunBatch(cmd.Context(), a.worker(sink), pipeline.BatchConfig{
				InputDir:    args[0],
				ErrorLog:    errorLog,
				Concurrency: concurrency,
			}, bar.done)
			bar.finish()
			if err != nil {
				return err
			}
			if report.Total == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No filings found in %s\n", args[0])
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report, errorLog))
			if failOnError && report.Failed > 0 {
				return fmt.Errorf("%d of %d filings failed", report.Failed, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for <name>.json results (default OUTPUT_DIR)")
	cmd.Flags().StringVar(&errorLog, "error-log", "error_log.txt", "Error log file, recreated each run")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Filings processed in parallel (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit non-zero when any filing fails")
	return cmd
}

func (a *app) s3Config() store.S3Config {
	return store.S3Config{
		Bucket:    a.cfg.S3Bucket,
		Prefix:    a.cfg.S3Prefix,
		Region:    a.cfg.S3Region,
		Endpoint:  a.cfg.S3Endpoint,
		AccessKey: a.cfg.S3AccessKey,
		SecretKey: a.cfg.S3SecretKey,
	}
}
