// Package main contains the entrypoint for the meter reading reminder bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	tgbot "github.com/go-telegram/bot"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/edgard/meterbot/internal/bot"
	"github.com/edgard/meterbot/internal/bot/handlers"
	"github.com/edgard/meterbot/internal/bot/tasks"
	"github.com/edgard/meterbot/internal/config"
	"github.com/edgard/meterbot/internal/database"
	"github.com/edgard/meterbot/internal/logger"
	"github.com/edgard/meterbot/internal/metrics"
	"github.com/edgard/meterbot/internal/reminder"
	"github.com/edgard/meterbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, clock, db, bot, scheduler),
// handles graceful shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	window := reminder.DefaultWindow
	if err := window.Validate(); err != nil {
		log.Error("Invalid reminder window", "error", err)
		return 1
	}

	loc, err := reminder.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Error("Failed to resolve local clock", "timezone", cfg.Scheduler.Timezone, "error", err)
		return 1
	}
	clock := clockwork.NewRealClock()
	calendar := reminder.NewCalendar(clock, loc)
	state := reminder.NewState(window, clock)
	log.Info("Reminder state initialized", "timezone", loc.String(), "today", calendar.Now().String())

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(registry)

	commands := reminder.NewCommands(state, reminder.Replies{
		DoneFirst:       cfg.Messages.DoneFirst,
		DoneAlready:     cfg.Messages.DoneAlready,
		Undone:          cfg.Messages.Reminder,
		StatusCompleted: cfg.Messages.StatusCompleted,
		StatusPending:   cfg.Messages.StatusPending,
	})

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Commands: commands,
		Store:    store,
		Metrics:  m,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, log, cmdHandlers); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:   log,
		State:    state,
		Calendar: calendar,
		Sink:     telegram.NewSink(tg, store, cfg.Telegram.ChatID, log),
		Notification: reminder.NewReminderNotification(
			cfg.Messages.Reminder,
			cfg.Messages.WebsiteButton,
			cfg.Telegram.WebsiteURL,
			cfg.Messages.DoneButton,
		),
		Store:   store,
		Metrics: m,
	}

	sched, err := bot.NewScheduler(log, calendar, tasks.RegisterAllTasks(tDeps), m)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, tg, sched, cfg.Metrics.Listen, registry)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
