// Package tasks implements the bot's scheduled tasks: the monthly reset, the
// daily reading reminder and database upkeep.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/meterbot/internal/metrics"
	"github.com/edgard/meterbot/internal/reminder"
)

// Maintainer runs database housekeeping.
type Maintainer interface {
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger       *slog.Logger
	State        *reminder.State
	Calendar     reminder.Calendar
	Sink         reminder.Sink
	Notification reminder.Notification
	Store        Maintainer
	Metrics      *metrics.Metrics
}
