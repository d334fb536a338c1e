package tasks

import (
	"context"
	"fmt"
	"time"
)

// sendTimeout bounds a single reminder delivery.
const sendTimeout = 30 * time.Second

// newReadingReminderTask sends the reminder when today is inside the window
// and the month is still open. A failed send leaves state untouched and is
// not retried.
func newReadingReminderTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", ReadingReminderTask)

	return func(ctx context.Context) error {
		today := deps.Calendar.Now()
		if !deps.State.ShouldFire(today) {
			log.DebugContext(ctx, "No reminder due", "date", today.String())
			return nil
		}

		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		if err := deps.Sink.Send(sendCtx, deps.Notification); err != nil {
			deps.Metrics.DeliveryFailed()
			log.ErrorContext(ctx, "Reminder delivery failed", "date", today.String(), "error", err)
			return fmt.Errorf("reading reminder: %w", err)
		}

		deps.Metrics.ReminderSent()
		log.InfoContext(ctx, "Reminder sent", "date", today.String())
		return nil
	}
}
