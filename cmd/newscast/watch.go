package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/newscast/internal/pipeline"
	"github.com/nguyentantai21042004/newscast/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process URL job files dropped into the jobs directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger()

			runCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			log.Info(runCtx, "========================================")
			log.Info(runCtx, "Newscast watch mode")
			log.Info(runCtx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(runCtx, "LLM provider: %s (%s)", cfg.LLM.Provider, cfg.LLM.Model)
			log.Info(runCtx, "Max concurrent jobs: %d", cfg.Performance.MaxConcurrent)
			log.Info(runCtx, "========================================")

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			p, err := buildPipeline(runCtx, cfg, pipeline.Options{}, log)
			if err != nil {
				return err
			}
			run := func(ctx context.Context, rawURL, outputName string) error {
				_, err := p.Run(ctx, rawURL, outputName)
				return err
			}

			w, err := watcher.New(cfg.Paths.Jobs, watcher.JobHandler(run, cfg.Paths.Archived, log), log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(runCtx); err != nil && !isCanceled(err) {
					errChan <- err
				}
			}()

			log.Info(runCtx, "Monitoring: %s", cfg.Paths.Jobs)
			log.Info(runCtx, "Output: %s", cfg.Paths.Output)
			log.Info(runCtx, "Press Ctrl+C to stop")

			select {
			case <-sigChan:
				log.Info(runCtx, "Shutdown signal received")
			case err := <-errChan:
				log.Error(runCtx, "Watcher error: %v", err)
				return err
			case <-runCtx.Done():
			}

			log.Info(runCtx, "Shutting down gracefully...")
			cancel()
			return nil
		},
	}
}
