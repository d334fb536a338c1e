// Package config provides configuration loading, validation, and management
// for the meter reading bot. Values come from built-in defaults, an optional
// YAML file and BOT_* environment variables, in that order of precedence.
package config

import (
	"errors"

	"github.com/go-telegram/bot/models"
)

// ErrConfiguration marks every configuration loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration parameters.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Bot API settings.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// ChatID receives reminders before anyone has sent /start. Zero means
	// wait for /start.
	ChatID         int64   `mapstructure:"chat_id"`
	AllowedUserIDs []int64 `mapstructure:"allowed_user_ids" validate:"dive,gt=0"`
	WebsiteURL     string  `mapstructure:"website_url"      validate:"omitempty,url"`

	BotInfo *models.User `mapstructure:"-"`
}

// SchedulerConfig holds the single local clock both triggers run on.
type SchedulerConfig struct {
	// Timezone is an IANA name or "Local". It is resolved at startup.
	Timezone string `mapstructure:"timezone"`
}

// DatabaseConfig points at the SQLite file holding the subscribed chat.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `mapstructure:"listen" validate:"omitempty,hostname_port"`
}

// MessagesConfig holds every user-facing text.
type MessagesConfig struct {
	Start           string `mapstructure:"start"            validate:"required"`
	Help            string `mapstructure:"help"             validate:"required"`
	Reminder        string `mapstructure:"reminder"         validate:"required"`
	StatusPending   string `mapstructure:"status_pending"   validate:"required"`
	StatusCompleted string `mapstructure:"status_completed" validate:"required"`
	DoneFirst       string `mapstructure:"done_first"       validate:"required"`
	DoneAlready     string `mapstructure:"done_already"     validate:"required"`
	WebsiteButton   string `mapstructure:"website_button"`
	DoneButton      string `mapstructure:"done_button"      validate:"required"`
	NotAuthorized   string `mapstructure:"not_authorized"   validate:"required"`
}

// IsUserAllowed reports whether userID may run commands. An empty allow list
// admits everyone.
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.Telegram.AllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.Telegram.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
