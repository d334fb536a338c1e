package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/meterbot/internal/reminder"
)

// NewCommandHandler returns a handler running action for a text command
// (/done, /undone, /status).
func NewCommandHandler(deps HandlerDeps, action reminder.Action) bot.HandlerFunc {
	return commandHandler{deps: deps, action: action}.Handle
}

type commandHandler struct {
	deps   HandlerDeps
	action reminder.Action
}

func (h commandHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", h.action.Name())

	if update.Message == nil {
		log.WarnContext(ctx, "Command handler received update with nil message", "update_id", update.ID)
		return
	}

	reply := h.deps.Commands.Execute(h.action)
	h.deps.Metrics.Command(reply.Action, reply.Outcome)

	snap := h.deps.Commands.State().Snapshot()
	log.InfoContext(ctx, "Command executed",
		"chat_id", update.Message.Chat.ID,
		"outcome", reply.Outcome,
		"task_done", snap.TaskDone,
		"reminders_enabled", snap.RemindersEnabled,
		"updated_at", snap.UpdatedAt)

	sendText(ctx, b, log, update.Message.Chat.ID, reply.Text)
}
