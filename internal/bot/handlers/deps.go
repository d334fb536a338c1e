package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/meterbot/internal/config"
	"github.com/edgard/meterbot/internal/metrics"
	"github.com/edgard/meterbot/internal/reminder"
)

// SubscriptionStore records the chat that asked for reminders.
type SubscriptionStore interface {
	SaveSubscription(ctx context.Context, chatID, userID int64) error
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Commands *reminder.Commands
	Store    SubscriptionStore
	Metrics  *metrics.Metrics
}
