package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shojha24/u-c-lotta-adipose/app/activity"
	"github.com/shojha24/u-c-lotta-adipose/app/api"
	"github.com/shojha24/u-c-lotta-adipose/app/blob"
	"github.com/shojha24/u-c-lotta-adipose/app/cfg"
	"github.com/shojha24/u-c-lotta-adipose/app/scrape"
	"github.com/shojha24/u-c-lotta-adipose/app/sources"
	"github.com/shojha24/u-c-lotta-adipose/app/store"
	"github.com/shojha24/u-c-lotta-adipose/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting UCLA Dining server", "version", appCfg.Version)

	ctx := context.Background()

	blobs, err := blob.Open(ctx)
	if err != nil {
		slog.Error("Failed to open blob store", "error", err)
		os.Exit(1)
	}

	documentStore := store.New(blobs, appCfg.DataKey)

	src, err := sources.Load(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source catalog", "error", err)
		os.Exit(1)
	}

	fetcher := scrape.NewHTTPFetcher(
		time.Duration(appCfg.HTTPTimeout)*time.Second,
		appCfg.HTTPRetries,
		appCfg.UserAgent,
	)
	collector := scrape.NewScraper(fetcher, src)

	// One-shot mode collects once and exits; useful for cron and backfills.
	if appCfg.Once {
		task := tasks.NewCollectTask(documentStore, collector)
		if err := task.Execute(ctx); err != nil {
			slog.Error("Collection run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	scheduler := tasks.NewScheduler(documentStore, collector)
	scheduler.Start()
	defer scheduler.Stop()

	activityClient := activity.NewClient(src,
		time.Duration(appCfg.HTTPTimeout)*time.Second,
		appCfg.HTTPRetries,
		appCfg.UserAgent,
	)

	apiHandler := api.NewHandler(documentStore, activityClient)
	server := api.NewServer(apiHandler, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
