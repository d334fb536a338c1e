package config

// Default values for configuration
const (
	DefaultLogLevel   = "info"
	DefaultDBPath     = "storage.db"
	DefaultTimezone   = "Local"
	DefaultWebsiteURL = "https://cabinet.rc-online.ru/sign_in"
)

// DefaultMessages are the bot's user-facing texts.
var DefaultMessages = MessagesConfig{
	Start:           "Привет! Каждый день начиная с 15 числа месяца и в течении 10 дней, я буду напоминать тебе о том, что нужно сдать показания счетчиков",
	Help:            "/done - показания сданы\n/undone - отменить отметку о сдаче\n/status - статус за этот месяц",
	Reminder:        "⚠️ Пора сдать показания счетчиков!",
	StatusPending:   "⚠️ Счетчики ждут!",
	StatusCompleted: "✅ Показания счетчиков на этот месяц уже сданы.",
	DoneFirst:       "✅ Отлично! Увидимся в следующем месяце!",
	DoneAlready:     "✅ Показания счетчиков уже сданы. Успокойся!",
	WebsiteButton:   "Сайт Личного Кабинета",
	DoneButton:      "✅ Уже сдал(а)",
	NotAuthorized:   "🚫 Доступ запрещён.",
}
