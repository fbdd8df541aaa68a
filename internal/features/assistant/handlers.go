// Package assistant — handlers.go обрабатывает вопросы из личных сообщений.
package assistant

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// replyAIError — ответ пользователю при сбое обращения к модели.
const replyAIError = "Произошла ошибка при обращении к ИИ."

// Handler обрабатывает вопросы к ассистенту.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик ассистента.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleQuestion отвечает на вопрос из личного сообщения.
func (h *Handler) HandleQuestion(ctx context.Context, msg *tgbotapi.Message) {
	var userID *int64
	if msg.From != nil {
		userID = &msg.From.ID
	}

	// Показываем «печатает...», пока модель готовит ответ
	if _, err := h.bot.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		log.WithError(err).Debug("Не удалось отправить chat action")
	}

	answer, err := h.service.HandleQuestion(ctx, msg.Text, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка ответа ассистента")
		h.sendMessage(msg.Chat.ID, replyAIError)
		return
	}
	if answer == "" {
		return
	}
	h.sendMessage(msg.Chat.ID, answer)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
