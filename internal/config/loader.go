package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional)
// 3. BOT_* environment variables, e.g. BOT_TELEGRAM_TOKEN
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to read config file %q: %v", ErrConfiguration, path, err)
		}
		slog.Info("Configuration file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.allowed_user_ids", []int64{})
	v.SetDefault("telegram.website_url", DefaultWebsiteURL)

	v.SetDefault("scheduler.timezone", DefaultTimezone)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("metrics.listen", "")

	v.SetDefault("messages.start", DefaultMessages.Start)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.reminder", DefaultMessages.Reminder)
	v.SetDefault("messages.status_pending", DefaultMessages.StatusPending)
	v.SetDefault("messages.status_completed", DefaultMessages.StatusCompleted)
	v.SetDefault("messages.done_first", DefaultMessages.DoneFirst)
	v.SetDefault("messages.done_already", DefaultMessages.DoneAlready)
	v.SetDefault("messages.website_button", DefaultMessages.WebsiteButton)
	v.SetDefault("messages.done_button", DefaultMessages.DoneButton)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
}
