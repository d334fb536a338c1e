package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/meterbot/internal/database"
	"github.com/edgard/meterbot/internal/reminder"
)

// MessageSender is the subset of *bot.Bot the sink needs.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// SubscriptionSource yields the chat that subscribed with /start.
type SubscriptionSource interface {
	GetSubscription(ctx context.Context) (*database.Subscription, error)
}

// Sink delivers reminder notifications to the subscribed chat.
type Sink struct {
	sender         MessageSender
	subs           SubscriptionSource
	fallbackChatID int64
	logger         *slog.Logger
}

// NewSink creates a sink. fallbackChatID is used while no chat has subscribed;
// zero disables it.
func NewSink(sender MessageSender, subs SubscriptionSource, fallbackChatID int64, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		sender:         sender,
		subs:           subs,
		fallbackChatID: fallbackChatID,
		logger:         logger.With("component", "notification_sink"),
	}
}

// Send delivers n. Every failure is returned as a *reminder.DeliveryError.
func (s *Sink) Send(ctx context.Context, n reminder.Notification) error {
	chatID, err := s.recipient(ctx)
	if err != nil {
		return &reminder.DeliveryError{Err: err}
	}

	params := &bot.SendMessageParams{ChatID: chatID, Text: n.Text}
	if kb := InlineKeyboard(n.Actions); kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := s.sender.SendMessage(ctx, params); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send notification", "chat_id", chatID, "error", err)
		return &reminder.DeliveryError{Err: err}
	}

	s.logger.DebugContext(ctx, "Notification sent", "chat_id", chatID)
	return nil
}

func (s *Sink) recipient(ctx context.Context) (int64, error) {
	if s.subs != nil {
		sub, err := s.subs.GetSubscription(ctx)
		if err != nil {
			return 0, fmt.Errorf("look up subscription: %w", err)
		}
		if sub != nil {
			return sub.ChatID, nil
		}
	}
	if s.fallbackChatID != 0 {
		return s.fallbackChatID, nil
	}
	return 0, reminder.ErrNoSubscriber
}

// InlineKeyboard renders actions as a single row of inline buttons, or nil when there are none.
func InlineKeyboard(actions []reminder.ButtonAction) *models.InlineKeyboardMarkup {
	if len(actions) == 0 {
		return nil
	}
	row := make([]models.InlineKeyboardButton, 0, len(actions))
	for _, a := range actions {
		row = append(row, models.InlineKeyboardButton{
			Text:         a.Label,
			URL:          a.URL,
			CallbackData: a.CallbackData,
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}
