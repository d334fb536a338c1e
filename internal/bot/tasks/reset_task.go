package tasks

import (
	"context"
)

// newMonthlyResetTask reopens the month on the reset day.
func newMonthlyResetTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", MonthlyResetTask)

	return func(ctx context.Context) error {
		today := deps.Calendar.Now()
		if !deps.State.CheckAndReset(today) {
			log.DebugContext(ctx, "Not a reset day", "date", today.String())
			return nil
		}

		deps.Metrics.Reset()
		log.InfoContext(ctx, "Monthly reminder state reset", "date", today.String())
		return nil
	}
}
