// Package filters решает, какие сообщения бот вообще обрабатывает.
// Группы и каналы проверяются по списку разрешённых чатов, личка —
// по наличию профиля участника.
package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// replyDenied — ответ в личке пользователю без профиля участника.
const replyDenied = "❌ Бот доступен только участникам шагового челленджа"

// ProfileChecker сообщает, известен ли пользователь боту.
// Профиль появляется после первого принятого отчёта.
type ProfileChecker interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// ChatFilter проверяет доступ входящих сообщений.
type ChatFilter struct {
	allowedChatIDs map[int64]struct{} // пустой — ограничение отключено
	profiles       ProfileChecker
	bot            *tgbotapi.BotAPI
}

// NewChatFilter создаёт фильтр доступа.
func NewChatFilter(allowedChatIDs []int64, profiles ProfileChecker, bot *tgbotapi.BotAPI) *ChatFilter {
	allowed := make(map[int64]struct{}, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = struct{}{}
	}
	return &ChatFilter{
		allowedChatIDs: allowed,
		profiles:       profiles,
		bot:            bot,
	}
}

// CheckAccess решает, обрабатывать ли сообщение.
//
// Правила:
//  1. Группа или канал — чат должен быть в списке разрешённых
//     (пустой список разрешает все чаты).
//  2. Личка — у пользователя должен быть профиль участника; остальным
//     отвечаем отказом, чтобы не молчать загадочно.
func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}

	chatID := message.Chat.ID
	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   chatID,
		"chat_type": message.Chat.Type,
	})

	if !message.Chat.IsPrivate() {
		// Группа или канал: сверяемся со списком разрешённых
		if len(f.allowedChatIDs) == 0 {
			return true
		}
		if _, ok := f.allowedChatIDs[chatID]; ok {
			return true
		}
		logger.Warn("Сообщение из неразрешённого чата проигнорировано")
		return false
	}

	// Личка: постов без автора тут не бывает, но на всякий случай
	if message.From == nil {
		logger.Warn("Личное сообщение без отправителя")
		return false
	}

	known, err := f.profiles.Exists(ctx, message.From.ID)
	if err != nil {
		logger.WithError(err).Error("Не удалось проверить профиль участника")
		return false
	}
	if known {
		return true
	}

	logger.WithField("user_id", message.From.ID).Info("Отказ: пользователь без профиля участника")
	msg := tgbotapi.NewMessage(chatID, replyDenied)
	if _, sendErr := f.bot.Send(msg); sendErr != nil {
		logger.WithError(sendErr).Warn("Не удалось отправить сообщение об отказе")
	}
	return false
}
