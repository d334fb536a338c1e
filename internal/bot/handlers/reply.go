package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// sendText sends text to chatID and logs delivery failures. The caller must
// not hold any reminder state while calling it.
func sendText(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) bool {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		return false
	}
	log.DebugContext(ctx, "Reply sent", "chat_id", chatID)
	return true
}

// answerCallback acknowledges a callback query so the client stops its spinner.
func answerCallback(ctx context.Context, b *bot.Bot, log *slog.Logger, callbackID, text string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", callbackID)
	}
}

// callbackChatID returns the chat a callback query's message lives in.
func callbackChatID(cq *models.CallbackQuery) (int64, bool) {
	switch {
	case cq.Message.Message != nil:
		return cq.Message.Message.Chat.ID, true
	case cq.Message.InaccessibleMessage != nil:
		return cq.Message.InaccessibleMessage.Chat.ID, true
	default:
		return 0, false
	}
}
