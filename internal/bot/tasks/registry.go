package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// ScheduledTask is a task that runs once a day at Hour:Minute local time.
type ScheduledTask struct {
	Hour   uint
	Minute uint
	Run    ScheduledTaskFunc
}

// Task names, used as job names and metric labels.
const (
	MonthlyResetTask    = "monthly_reset"
	ReadingReminderTask = "reading_reminder"
	SQLMaintenanceTask  = "sql_maintenance"
)

// sqlMaintenanceHour keeps upkeep away from both the reset and the reminder.
const sqlMaintenanceHour = 3

// RegisterAllTasks initializes and returns a map of all registered scheduled tasks.
// The reset and reminder times come from the state's window.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTask {
	w := deps.State.Window()
	tasks := map[string]ScheduledTask{
		MonthlyResetTask: {
			Hour:   uint(w.ResetHour),
			Minute: uint(w.ResetMinute),
			Run:    newMonthlyResetTask(deps),
		},
		ReadingReminderTask: {
			Hour:   uint(w.FireHour),
			Minute: uint(w.FireMinute),
			Run:    newReadingReminderTask(deps),
		},
	}
	if deps.Store != nil {
		tasks[SQLMaintenanceTask] = ScheduledTask{
			Hour:   sqlMaintenanceHour,
			Minute: 0,
			Run:    newSQLMaintenanceTask(deps),
		}
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
