// Package bot implements the bot's lifecycle management and component
// orchestration: the Telegram listener, the trigger scheduler and the
// metrics endpoint.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/meterbot/internal/metrics"
)

// Listener receives chat updates until ctx is cancelled. *bot.Bot from
// go-telegram satisfies it.
type Listener interface {
	Start(ctx context.Context)
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger      *slog.Logger
	listener    Listener
	scheduler   *Scheduler
	metricsAddr string
	gatherer    prometheus.Gatherer
}

// NewBot creates the orchestrator. An empty metricsAddr disables the metrics endpoint.
func NewBot(logger *slog.Logger, listener Listener, scheduler *Scheduler, metricsAddr string, gatherer prometheus.Gatherer) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:      logger.With("component", "bot_orchestrator"),
		listener:    listener,
		scheduler:   scheduler,
		metricsAddr: metricsAddr,
		gatherer:    gatherer,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on context cancellation.
// It returns an error if any component fails during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.listener.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.metricsAddr != "" && b.gatherer != nil {
		g.Go(func() error {
			return metrics.Serve(gCtx, b.metricsAddr, b.gatherer, b.logger)
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
