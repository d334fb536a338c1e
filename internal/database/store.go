package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods should accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveSubscription makes chatID the reminder recipient, replacing any previous one.
	SaveSubscription(ctx context.Context, chatID, userID int64) error

	// GetSubscription returns the current recipient. Returns nil, nil if nobody subscribed.
	GetSubscription(ctx context.Context) (*Subscription, error)

	// RunSQLMaintenance performs database maintenance tasks.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveSubscription upserts the single subscription row.
func (s *sqlxStore) SaveSubscription(ctx context.Context, chatID, userID int64) error {
	if chatID == 0 {
		return fmt.Errorf("subscription must have a non-zero chat_id")
	}

	now := time.Now().UTC()
	sub := &Subscription{ID: 1, ChatID: chatID, UserID: userID, CreatedAt: now, UpdatedAt: now}

	query := `
        INSERT INTO subscriptions (id, chat_id, user_id, created_at, updated_at)
        VALUES (:id, :chat_id, :user_id, :created_at, :updated_at)
        ON CONFLICT(id) DO UPDATE SET
            chat_id = excluded.chat_id,
            user_id = excluded.user_id,
            updated_at = excluded.updated_at;
    `
	if _, err := s.db.NamedExecContext(ctx, query, sub); err != nil {
		s.logger.ErrorContext(ctx, "Error saving subscription", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to save subscription (chat %d): %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Subscription saved", "chat_id", chatID, "user_id", userID)
	return nil
}

// GetSubscription loads the subscription row if present.
func (s *sqlxStore) GetSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	err := s.db.GetContext(ctx, &sub, `SELECT id, chat_id, user_id, created_at, updated_at FROM subscriptions WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Error loading subscription", "error", err)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// RunSQLMaintenance lets SQLite refresh its query planner statistics.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		return fmt.Errorf("failed to run PRAGMA optimize: %w", err)
	}
	return nil
}
