// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogMessage логирует входящее сообщение: chat_id, автора и начало текста.
// У постов канала автора нет — поля user_id/username тогда опускаются.
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.Chat == nil {
		return
	}

	text := message.Text
	if text == "" {
		text = message.Caption
	}
	// Срезаем по рунам: тексты русские, байтовый срез порвёт букву пополам
	if runes := []rune(text); len(runes) > 50 {
		text = string(runes[:50]) + "..."
	}

	fields := log.Fields{
		"chat_id": message.Chat.ID,
		"text":    text,
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.UserName
	}

	log.WithFields(fields).Debug("Входящее сообщение")
}
