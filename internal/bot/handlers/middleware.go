// Package handlers contains Telegram bot command and callback handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AllowedUsersOnly creates a middleware that lets through only users on the
// configured allow list. An empty list admits everyone.
func AllowedUsersOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			var userID int64
			switch {
			case update.Message != nil && update.Message.From != nil:
				userID = update.Message.From.ID
			case update.CallbackQuery != nil:
				userID = update.CallbackQuery.From.ID
			default:
				next(ctx, b, update)
				return
			}

			if deps.Config.IsUserAllowed(userID) {
				next(ctx, b, update)
				return
			}

			log := deps.Logger.With("middleware", "AllowedUsersOnly")
			log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID)

			text := deps.Config.Messages.NotAuthorized
			if update.CallbackQuery != nil {
				answerCallback(ctx, b, log, update.CallbackQuery.ID, text)
				return
			}
			sendText(ctx, b, log, update.Message.Chat.ID, text)
		}
	}
}
