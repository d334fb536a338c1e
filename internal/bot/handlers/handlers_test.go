package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/meterbot/internal/config"
	"github.com/edgard/meterbot/internal/metrics"
	"github.com/edgard/meterbot/internal/reminder"
)

// apiCall is one request the bot made to the fake Bot API.
type apiCall struct {
	Method string
	Form   map[string]string
}

// fakeAPI is a minimal Bot API server that records every call.
type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := apiCall{Method: path.Base(r.URL.Path), Form: map[string]string{}}
	if err := r.ParseMultipartForm(1 << 20); err == nil && r.MultipartForm != nil {
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				call.Form[k] = v[0]
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch call.Method {
	case "sendMessage":
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}

func (f *fakeAPI) byMethod(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

type fakeStore struct {
	mu     sync.Mutex
	chatID int64
	err    error
}

func (s *fakeStore) SaveSubscription(_ context.Context, chatID, _ int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.chatID = chatID
	return nil
}

type harness struct {
	api   *fakeAPI
	bot   *bot.Bot
	deps  HandlerDeps
	state *reminder.State
	store *fakeStore
}

func newHarness(t *testing.T, allowed ...int64) *harness {
	t.Helper()

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := bot.New("123456:TEST-token", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)

	cfg := &config.Config{Messages: config.DefaultMessages}
	cfg.Telegram.AllowedUserIDs = allowed

	state := reminder.NewState(reminder.DefaultWindow, clockwork.NewFakeClockAt(time.Date(2025, time.June, 18, 9, 0, 0, 0, time.UTC)))
	store := &fakeStore{}

	deps := HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Commands: reminder.NewCommands(state, reminder.Replies{
			DoneFirst:       cfg.Messages.DoneFirst,
			DoneAlready:     cfg.Messages.DoneAlready,
			Undone:          cfg.Messages.Reminder,
			StatusCompleted: cfg.Messages.StatusCompleted,
			StatusPending:   cfg.Messages.StatusPending,
		}),
		Store:   store,
		Metrics: metrics.MustNew(prometheus.NewRegistry()),
	}

	return &harness{api: api, bot: b, deps: deps, state: state, store: store}
}

func messageUpdate(chatID, userID int64, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: userID},
			Text: text,
		},
	}
}

func callbackUpdate(chatID, userID int64, data string) *models.Update {
	return &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: userID},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 11, Chat: models.Chat{ID: chatID}},
			},
		},
	}
}

func TestDoneCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	handler := NewCommandHandler(h.deps, reminder.DoneAction{})

	handler(ctx, h.bot, messageUpdate(42, 7, "/done"))
	handler(ctx, h.bot, messageUpdate(42, 7, "/done"))

	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 2)
	assert.Equal(t, "42", sent[0].Form["chat_id"])
	assert.Equal(t, config.DefaultMessages.DoneFirst, sent[0].Form["text"])
	assert.Equal(t, config.DefaultMessages.DoneAlready, sent[1].Form["text"])
	assert.Equal(t, reminder.Completed, h.state.Status())
}

func TestUndoneCommandSameReplyEitherWay(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	undone := NewCommandHandler(h.deps, reminder.UndoneAction{})

	undone(ctx, h.bot, messageUpdate(42, 7, "/undone"))
	h.state.MarkDone()
	undone(ctx, h.bot, messageUpdate(42, 7, "/undone"))

	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 2)
	assert.Equal(t, config.DefaultMessages.Reminder, sent[0].Form["text"])
	assert.Equal(t, sent[0].Form["text"], sent[1].Form["text"])
	assert.Equal(t, reminder.Pending, h.state.Status())
}

func TestStatusCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	status := NewCommandHandler(h.deps, reminder.StatusAction{})

	status(ctx, h.bot, messageUpdate(42, 7, "/status"))
	h.state.MarkDone()
	status(ctx, h.bot, messageUpdate(42, 7, "/status"))

	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 2)
	assert.Equal(t, config.DefaultMessages.StatusPending, sent[0].Form["text"])
	assert.Equal(t, config.DefaultMessages.StatusCompleted, sent[1].Form["text"])
}

func TestDoneButtonCallback(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	NewCallbackHandler(h.deps)(context.Background(), h.bot, callbackUpdate(42, 7, reminder.CallbackDone))

	answers := h.api.byMethod("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, "cb-1", answers[0].Form["callback_query_id"])

	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, "42", sent[0].Form["chat_id"])
	assert.Equal(t, config.DefaultMessages.DoneFirst, sent[0].Form["text"])
	assert.Equal(t, reminder.Completed, h.state.Status())
}

func TestUnknownCallbackIsAcknowledgedOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	NewCallbackHandler(h.deps)(context.Background(), h.bot, callbackUpdate(42, 7, "mystery"))
	NewDefaultHandler(h.deps)(context.Background(), h.bot, callbackUpdate(42, 7, "mystery"))

	assert.Len(t, h.api.byMethod("answerCallbackQuery"), 2)
	assert.Empty(t, h.api.byMethod("sendMessage"))
	assert.Equal(t, reminder.Pending, h.state.Status())
}

func TestStartSubscribesChat(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.deps.Config.Telegram.BotInfo = &models.User{Username: "meter_bot"}
	NewStartHandler(h.deps)(context.Background(), h.bot, messageUpdate(42, 7, "/start"))

	assert.Equal(t, int64(42), h.store.chatID)
	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, config.DefaultMessages.Start, sent[0].Form["text"])
}

func TestStartStillRepliesWhenStoreFails(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.store.err = errors.New("disk full")
	NewStartHandler(h.deps)(context.Background(), h.bot, messageUpdate(42, 7, "/start"))

	assert.Len(t, h.api.byMethod("sendMessage"), 1)
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	NewHelpHandler(h.deps)(context.Background(), h.bot, messageUpdate(42, 7, "/help"))

	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, config.DefaultMessages.Help, sent[0].Form["text"])
}

func TestAllowedUsersOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t, 7)
	ctx := context.Background()

	called := 0
	next := func(context.Context, *bot.Bot, *models.Update) { called++ }
	guarded := AllowedUsersOnly(h.deps)(next)

	guarded(ctx, h.bot, messageUpdate(42, 7, "/done"))
	assert.Equal(t, 1, called)

	guarded(ctx, h.bot, messageUpdate(42, 8, "/done"))
	assert.Equal(t, 1, called)
	sent := h.api.byMethod("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, config.DefaultMessages.NotAuthorized, sent[0].Form["text"])

	guarded(ctx, h.bot, callbackUpdate(42, 8, reminder.CallbackDone))
	assert.Equal(t, 1, called)
	answers := h.api.byMethod("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, config.DefaultMessages.NotAuthorized, answers[0].Form["text"])
}

func TestRegisterAllCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	regs := RegisterAllCommands(h.deps)

	for _, name := range []string{"/start", "/help", "/done", "/undone", "/status", "callback:" + reminder.CallbackDone} {
		reg, ok := regs[name]
		require.True(t, ok, "missing %s", name)
		assert.NotNil(t, reg.Handler, name)
	}
	assert.Equal(t, bot.HandlerTypeCallbackQueryData, regs["callback:"+reminder.CallbackDone].HandlerType)
	assert.Equal(t, bot.MatchTypeExact, regs["callback:"+reminder.CallbackDone].MatchType)
}
