package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/meterbot/internal/reminder"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	Description string
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	restricted := []tgbot.Middleware{AllowedUsersOnly(deps)}

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  restricted,
		Description: "Подписаться на напоминания",
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: "Список команд",
	}
	handlers["/done"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "done",
		Handler:     NewCommandHandler(deps, reminder.DoneAction{}),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  restricted,
		Description: "Показания сданы",
	}
	handlers["/undone"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "undone",
		Handler:     NewCommandHandler(deps, reminder.UndoneAction{}),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  restricted,
		Description: "Отменить отметку о сдаче",
	}
	handlers["/status"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "status",
		Handler:     NewCommandHandler(deps, reminder.StatusAction{}),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  restricted,
		Description: "Статус за этот месяц",
	}
	handlers["callback:"+reminder.CallbackDone] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     reminder.CallbackDone,
		Handler:     NewCallbackHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
		Middleware:  restricted,
	}

	return handlers
}
