package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/meterbot/internal/bot/handlers"
	"github.com/edgard/meterbot/internal/database"
	"github.com/edgard/meterbot/internal/reminder"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &models.Message{ID: len(f.sent)}, nil
}

type fakeSubs struct {
	sub *database.Subscription
	err error
}

func (f fakeSubs) GetSubscription(context.Context) (*database.Subscription, error) {
	return f.sub, f.err
}

var testNotification = reminder.NewReminderNotification("submit", "site", "https://example.com", "done")

func TestSinkSendsToSubscribedChat(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	sink := NewSink(sender, fakeSubs{sub: &database.Subscription{ChatID: 42}}, 7, nil)

	require.NoError(t, sink.Send(context.Background(), testNotification))
	require.Len(t, sender.sent, 1)

	params := sender.sent[0]
	assert.Equal(t, int64(42), params.ChatID)
	assert.Equal(t, "submit", params.Text)

	kb, ok := params.ReplyMarkup.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "https://example.com", kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, reminder.CallbackDone, kb.InlineKeyboard[0][1].CallbackData)
}

func TestSinkFallsBackToConfiguredChat(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	sink := NewSink(sender, fakeSubs{}, 7, nil)

	require.NoError(t, sink.Send(context.Background(), reminder.Notification{Text: "plain"}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(7), sender.sent[0].ChatID)
	assert.Nil(t, sender.sent[0].ReplyMarkup)
}

func TestSinkErrorsAreDeliveryErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name   string
		sink   *Sink
		target error
	}{
		{"no subscriber", NewSink(&fakeSender{}, fakeSubs{}, 0, nil), reminder.ErrNoSubscriber},
		{"lookup fails", NewSink(&fakeSender{}, fakeSubs{err: boom}, 0, nil), boom},
		{"send fails", NewSink(&fakeSender{err: boom}, nil, 7, nil), boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.sink.Send(context.Background(), testNotification)
			var de *reminder.DeliveryError
			require.ErrorAs(t, err, &de)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestBotCommandsSorted(t *testing.T) {
	t.Parallel()

	regs := map[string]handlers.RegisteredHandler{
		"/status": {HandlerType: bot.HandlerTypeMessageText, Pattern: "status", Description: "s"},
		"/done":   {HandlerType: bot.HandlerTypeMessageText, Pattern: "done", Description: "d"},
		"/hidden": {HandlerType: bot.HandlerTypeMessageText, Pattern: "hidden"},
		"button":  {HandlerType: bot.HandlerTypeCallbackQueryData, Pattern: reminder.CallbackDone, Description: "x"},
	}

	cmds := BotCommands(regs)
	require.Len(t, cmds, 2)
	assert.Equal(t, "done", cmds[0].Command)
	assert.Equal(t, "status", cmds[1].Command)
}

func TestNewTelegramBotRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	_, err := NewTelegramBot("", nil)
	assert.Error(t, err)
}
