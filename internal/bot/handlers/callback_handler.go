package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/meterbot/internal/reminder"
)

// NewCallbackHandler returns a handler for inline button presses. The
// "already done" button runs the same operation as /done.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	cq := update.CallbackQuery
	if cq == nil {
		log.WarnContext(ctx, "Callback handler received update without callback query", "update_id", update.ID)
		return
	}

	answerCallback(ctx, b, log, cq.ID, "")

	action, ok := reminder.ParseCallback(cq.Data)
	if !ok {
		log.WarnContext(ctx, "Unknown callback query", "data", cq.Data)
		return
	}

	reply := h.deps.Commands.Execute(action)
	h.deps.Metrics.Command(reply.Action, reply.Outcome)
	log.InfoContext(ctx, "Callback executed", "user_id", cq.From.ID, "action", reply.Action, "outcome", reply.Outcome)

	chatID, ok := callbackChatID(cq)
	if !ok {
		log.WarnContext(ctx, "Callback query has no chat to reply to", "callback_query_id", cq.ID)
		return
	}
	sendText(ctx, b, log, chatID, reply.Text)
}
