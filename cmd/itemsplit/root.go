package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/itemsplit/internal/catalog"
	"github.com/dgallion1/itemsplit/internal/config"
	"github.com/dgallion1/itemsplit/internal/parser"
	"github.com/dgallion1/itemsplit/internal/pipeline"
	"github.com/dgallion1/itemsplit/internal/segment"
	"github.com/dgallion1/itemsplit/internal/store"
)

// app is the state shared by subcommands once flags and environment are
// resolved.
type app struct {
	cfg  config.Config
	opts segment.Options
	log  *slog.Logger

	verbose         bool
	threshold       int
	maxHeaderLength int
	catalogFile     string
	formType        string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "itemsplit",
		Short: "Split 10-K filings into Item sections",
		Long: `itemsplit finds the canonical Item headers of a 10-K filing (Item 1, 1A, ... 16)
by fuzzy matching, validates that every Item is present and in order, and writes
one text block per Item.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&a.threshold, "threshold", segment.DefaultThreshold, "Minimum fuzzy score (0-100, strict) for a header candidate")
	flags.IntVar(&a.maxHeaderLength, "max-header-length", segment.DefaultMaxHeaderLength, "Longest block text considered a header")
	flags.StringVar(&a.catalogFile, "catalog", "", "YAML catalog file (default: built-in 10-K items)")
	flags.StringVar(&a.formType, "form-type", "10-K", "Form type of the primary document in full-submission files")

	root.AddCommand(newBatchCmd(a), newFileCmd(a), newCatalogCmd(a))
	return root
}

// init loads the environment and lets explicitly set flags win over it.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.ScoreThreshold = a.threshold
	}
	if flags.Changed("max-header-length") {
		cfg.MaxHeaderLength = a.maxHeaderLength
	}
	if flags.Changed("catalog") {
		cfg.CatalogFile = a.catalogFile
	}
	if flags.Changed("form-type") {
		cfg.FormType = a.formType
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	items, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	a.opts = cfg.SegmentOptions()
	a.opts.Catalog = items
	return nil
}

func (a *app) worker(sink store.Sink) *pipeline.Worker {
	return pipeline.NewWorker(sink, a.quietLog(), pipeline.WorkerConfig{
		Segment:  a.opts,
		FormType: a.cfg.FormType,
		Parser:   parser.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext},
	}, nil, nil)
}

// quietLog drops per-filing info lines unless --verbose is set; the summary
// covers them.
func (a *app) quietLog() *slog.Logger {
	if a.verbose {
		return a.log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
