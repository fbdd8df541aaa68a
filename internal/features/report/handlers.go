// Package report — handlers.go обрабатывает Telegram-сообщения с отчётами.
// Ответы повторяют привычные участникам формулировки: «#ник - принято»,
// «Отсутствует #ник», «Отсутствует количество шагов».
package report

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/common"
)

// Handler обрабатывает сообщения с меткой #отчет.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик отчётов.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleReport принимает сообщение с отчётом и отвечает на него.
// Работает и для сообщений группы, и для постов канала: у поста канала
// нет автора, такой отчёт сохраняется без userID.
func (h *Handler) HandleReport(ctx context.Context, msg *tgbotapi.Message) {
	var userID *int64
	if msg.From != nil {
		userID = &msg.From.ID
	}

	// Отчёт может прийти подписью к фото — берём подпись вместо текста.
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	rec, err := h.service.Accept(ctx, userID, text)
	switch {
	case errors.Is(err, common.ErrNicknameMissing):
		h.reply(msg, "Отсутствует #ник")
	case errors.Is(err, common.ErrStepsMissing):
		h.reply(msg, "Отсутствует количество шагов")
	case err != nil:
		log.WithError(err).Error("Ошибка сохранения отчёта")
		h.reply(msg, "Ошибка сохранения данных")
	default:
		h.reply(msg, fmt.Sprintf("#%s - принято", rec.Nickname))
	}
}

// reply отвечает на конкретное сообщение (reply работает и в канале).
func (h *Handler) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := h.bot.Send(out); err != nil {
		log.WithError(err).WithField("chat_id", msg.Chat.ID).Error("Ошибка отправки ответа")
	}
}
