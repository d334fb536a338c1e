package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDefaultHandler returns the handler for updates no registered handler
// matched. Unknown callback queries are acknowledged and logged.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	log := deps.Logger.With("handler", "default")

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if cq := update.CallbackQuery; cq != nil {
			log.WarnContext(ctx, "Unknown callback query", "data", cq.Data, "user_id", cq.From.ID)
			answerCallback(ctx, b, log, cq.ID, "")
			return
		}
		log.DebugContext(ctx, "Ignoring unhandled update", "update_id", update.ID)
	}
}
