package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/httpapi"
	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/processor"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
	"github.com/nguyentantai21042004/audio-summarizer/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI, JSON API and optional drop-folder watcher",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Audio Summarizer %s", version)
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Timeout per summary: %s", cfg.Summarizer.Timeout)
	log.Info(ctx, "Max Concurrent Summaries: %d", cfg.Performance.MaxConcurrent)
	if cfg.Gemini.APIKey == "" {
		log.Warn(ctx, "GOOGLE_API_KEY is not set, summaries will fail until it is configured")
	}

	in := intake.New(cfg, log)
	if err := in.Sweep(ctx); err != nil {
		log.Warn(ctx, "Failed to sweep upload dir: %v", err)
	}

	summ := summarizer.NewGemini(cfg, log)
	srv := httpapi.NewServer(cfg, in, summ, log)

	// Drop-folder setup can fail, so it runs before the listener starts.
	w, err := newDropFolder(cfg, summ, log)
	if err != nil {
		return err
	}

	errChan := make(chan error, 2)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	if w != nil {
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("watcher: %w", err)
			}
		}()

		log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
	}

	log.Info(ctx, "Audio Summarizer is ready on %s", cfg.Server.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "Shutdown signal received")
	case runErr = <-errChan:
		log.Error(ctx, "Fatal error: %v", runErr)
	}
	stop()

	log.Info(context.Background(), "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	if err := in.Sweep(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "Failed to sweep upload dir: %v", err)
	}

	log.Info(shutdownCtx, "Audio Summarizer stopped")
	return runErr
}

// newDropFolder returns a watcher feeding the processor, or nil when no
// input folder is configured.
func newDropFolder(cfg *config.Config, summ summarizer.Summarizer, log logger.Logger) (watcher.Watcher, error) {
	if !cfg.WatchEnabled() {
		return nil, nil
	}
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	proc := processor.New(cfg, summ, log)
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return w, nil
}

// ensureDirectories creates the drop-folder directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
