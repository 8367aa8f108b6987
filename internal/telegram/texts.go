package telegram

// Reply keyboard button labels. Button presses arrive as plain text and map
// to the same logic as their command counterparts.
const (
	ButtonStart = "Старт"
	ButtonStop  = "Стоп"
)

const (
	textGreeting = "Привет! 👋\n" +
		"Я — твой помощник, чтобы не забыть сделать забор крови после еды.\n\n" +
		"Для начала, напиши, во сколько ты поел (в формате HH:MM):"

	textAskDelay = "Отлично! 🕒\n" +
		"Теперь укажи, через сколько минут тебе напомнить о заборе крови.\n\n" +
		"Напиши число минут (например, 30 или 120):"

	textBadMealTime = "❌ Неверный формат времени.\n" +
		"Пожалуйста, введи время в формате HH:MM (например, 14:30)."

	textBadDelay = "❌ Неверное значение.\n" +
		"Пожалуйста, введи число минут (например, 30 или 120)."

	// Formatted with the computed reminder time (HH:MM).
	textConfirmed = "✅ Отлично! Я запомнил.\n\n" +
		"Я напомню тебе о заборе крови в %s.\n\n" +
		"Если что-то изменится, просто нажми /start."

	textStopped = "Спам остановлен. Нажми /start, чтобы начать заново."

	// TextReminder is the fixed notification payload; the notifier resends
	// it every interval until acknowledged or the window elapses.
	TextReminder = "⏰ Время сделать забор крови!\n\n" +
		"Не забудь выполнить забор крови, как мы договорились. 😊"

	textHelp = "Я напоминаю о заборе крови после еды.\n\n" +
		"Нажми /start или кнопку «Старт», укажи время приёма пищи (HH:MM) " +
		"и через сколько минут напомнить.\n" +
		"Кнопка «Стоп» останавливает напоминания."

	// Formatted with total, done and stopped counts.
	textStats = "📊 Твои напоминания\n\n" +
		"Всего: %d\n" +
		"Выполнено: %d\n" +
		"Остановлено: %d"
)
