package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/meterbot/internal/bot/tasks"
	applog "github.com/edgard/meterbot/internal/logger"
	"github.com/edgard/meterbot/internal/metrics"
	"github.com/edgard/meterbot/internal/reminder"
)

// Scheduler runs each registered task once a day at its time of day, using
// the calendar's clock and location.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	calendar  reminder.Calendar
	taskMap   map[string]tasks.ScheduledTask
	metrics   *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex // To protect access during start/stop
	running bool

	guardMu sync.Mutex
	lastRun map[string]reminder.Snapshot
}

// NewScheduler creates a gocron scheduler driven by calendar's clock.
func NewScheduler(logger *slog.Logger, calendar *reminder.ClockCalendar, taskMap map[string]tasks.ScheduledTask, m *metrics.Metrics) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler(
		gocron.WithClock(calendar.Clock()),
		gocron.WithLocation(calendar.Location()),
		gocron.WithLogger(applog.NewGocronLogger(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		logger:    log,
		calendar:  calendar,
		taskMap:   taskMap,
		metrics:   m,
		ctx:       ctx,
		cancel:    cancel,
		lastRun:   make(map[string]reminder.Snapshot),
	}, nil
}

// Start registers every task as a daily job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	names := make([]string, 0, len(s.taskMap))
	for name := range s.taskMap {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		task := s.taskMap[name]
		if task.Run == nil {
			s.logger.Warn("Scheduled task has no function, skipping", "task_name", name)
			continue
		}

		_, err := s.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(task.Hour, task.Minute, 0))),
			gocron.NewTask(s.runTask, s.ctx, name),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule task %q: %w", name, err)
		}

		s.logger.Info("Scheduled task", "task_name", name, "at", fmt.Sprintf("%02d:%02d", task.Hour, task.Minute))
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler initialized and started", "tasks_scheduled", len(names))

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.cancel()
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}

// runTask executes a task at most once per calendar day.
func (s *Scheduler) runTask(ctx context.Context, name string) {
	task, ok := s.taskMap[name]
	if !ok {
		s.logger.Warn("Scheduled task not found in registry", "task_name", name)
		return
	}

	today := s.calendar.Now()
	if !s.claimDay(name, today) {
		s.logger.Debug("Scheduled task already ran today, skipping", "task_name", name, "date", today.String())
		s.metrics.TaskRun(name, "skipped")
		return
	}

	s.logger.Info("Running scheduled task", "task_name", name, "date", today.String())
	startTime := time.Now()

	if err := task.Run(ctx); err != nil {
		s.logger.Error("Scheduled task failed", "task_name", name, "error", err)
		s.metrics.TaskRun(name, "error")
	} else {
		s.metrics.TaskRun(name, "ok")
	}

	s.logger.Info("Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
}

// claimDay records that name runs on today. It returns false if it already did.
func (s *Scheduler) claimDay(name string, today reminder.Snapshot) bool {
	s.guardMu.Lock()
	defer s.guardMu.Unlock()

	if last, ok := s.lastRun[name]; ok && last == today {
		return false
	}
	s.lastRun[name] = today
	return true
}
