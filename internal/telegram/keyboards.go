package telegram

import "github.com/go-telegram/bot/models"

// MainKeyboard returns the persistent Старт/Стоп reply keyboard
func MainKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: ButtonStart}},
			{{Text: ButtonStop}},
		},
		ResizeKeyboard:        true,
		InputFieldPlaceholder: "Выберите пункт меню...",
	}
}
