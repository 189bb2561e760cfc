package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"github.com/dgallion1/itemsplit/internal/api"
	"github.com/dgallion1/itemsplit/internal/catalog"
	"github.com/dgallion1/itemsplit/internal/config"
	"github.com/dgallion1/itemsplit/internal/parser"
	"github.com/dgallion1/itemsplit/internal/pipeline"
	"github.com/dgallion1/itemsplit/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	items, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Error("load catalog", "path", cfg.CatalogFile, "error", err)
		os.Exit(1)
	}

	sink, err := store.Open(ctx, cfg.OutputDir, store.S3Config{
		Bucket:    cfg.S3Bucket,
		Prefix:    cfg.S3Prefix,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Error("open output sink", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize pipeline.
	opts := cfg.SegmentOptions()
	opts.Catalog = items
	stats := pipeline.NewLatencyStats(time.Hour)
	worker := pipeline.NewWorker(sink, log, pipeline.WorkerConfig{
		Segment:  opts,
		FormType: cfg.FormType,
		Parser:   parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
	}, stats, pipeline.NewMetrics(reg))

	orch := pipeline.NewOrchestrator(cfg, worker, stats, log)
	orch.Start(ctx)

	// Optional inbox sweep.
	scheduler := cron.New()
	if cfg.InboxDir != "" {
		sweeper := pipeline.NewSweeper(cfg.InboxDir, orch, cfg.MaxUploadBytes, log)
		if _, err := sweeper.Schedule(ctx, scheduler, cfg.SweepSchedule); err != nil {
			log.Error("schedule inbox sweep", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		log.Info("inbox sweep scheduled", "dir", cfg.InboxDir, "schedule", cfg.SweepSchedule)
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, items, reg, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		<-scheduler.Stop().Done()
		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting itemsplit", "port", cfg.Port, "catalog_items", items.Len(), "threshold", cfg.ScoreThreshold)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
