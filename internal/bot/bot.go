// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go запускает polling и маршрутизирует входящие: отчёты о шагах —
// в приём отчётов, вопросы в личке — к ассистенту.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/bot/filters"
	"easygo.ru/steps-bot/internal/bot/middleware"
	"easygo.ru/steps-bot/internal/config"
	"easygo.ru/steps-bot/internal/features/assistant"
	"easygo.ru/steps-bot/internal/features/history"
	"easygo.ru/steps-bot/internal/features/report"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	reportHandler    *report.Handler
	assistantHandler *assistant.Handler // nil — ассистент выключен
	historyService   *history.Service

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	reportHandler *report.Handler,
	assistantHandler *assistant.Handler,
	historyService *history.Service,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:              api,
		cfg:              cfg,
		chatFilter:       chatFilter,
		rateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		reportHandler:    reportHandler,
		assistantHandler: assistantHandler,
		historyService:   historyService,
		inflight:         make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds
	// Посты канала нужны не меньше сообщений: отчёты публикуют и туда
	u.AllowedUpdates = []string{"message", "channel_post"}

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// Close освобождает фоновые ресурсы бота.
func (b *Bot) Close() {
	b.rateLimiter.Close()
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	// Отчёты приходят и сообщениями, и постами канала
	message := update.Message
	if message == nil {
		message = update.ChannelPost
	}
	if message == nil {
		return
	}

	// Текст сообщения или подпись к фото со скриншотом шагомера
	text := message.Text
	if text == "" {
		text = message.Caption
	}
	if text == "" {
		return
	}

	// Логируем входящее
	middleware.LogMessage(message)

	// Проверяем доступ (список чатов или профиль в личке)
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	// Сообщения группы и канала попадают в окно истории — это контекст
	// для ответов ассистента. Личную переписку туда не пишем.
	if !message.Chat.IsPrivate() {
		b.recordHistory(ctx, message, text)
	}

	// Отчёт о шагах обрабатываем из любого разрешённого чата
	if report.IsReport(text) {
		b.reportHandler.HandleReport(ctx, message)
		return
	}

	// Всё остальное в личке — вопрос ассистенту
	if message.Chat.IsPrivate() {
		b.handleQuestion(ctx, message)
	}
}

// handleQuestion передаёт личное сообщение ассистенту с учётом rate limit.
func (b *Bot) handleQuestion(ctx context.Context, message *tgbotapi.Message) {
	if b.assistantHandler == nil {
		return
	}

	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		b.sendMessage(message.Chat.ID, "Слишком много вопросов подряд, подожди минутку 🙏")
		return
	}

	b.assistantHandler.HandleQuestion(ctx, message)
}

// recordHistory сохраняет сообщение в окно истории.
func (b *Bot) recordHistory(ctx context.Context, message *tgbotapi.Message, text string) {
	m := history.Message{
		MessageID: message.MessageID,
		ChatID:    message.Chat.ID,
		Text:      text,
		SentAt:    message.Time(),
	}
	if message.From != nil {
		m.UserID = &message.From.ID
		m.Username = message.From.UserName
	}

	if err := b.historyService.Record(ctx, m); err != nil {
		log.WithError(err).Warn("Не удалось сохранить сообщение в историю")
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendToChat отправляет сообщение в указанный чат (для итогов дня из крона).
func (b *Bot) SendToChat(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Не удалось отправить сообщение в чат")
	} else {
		log.WithField("chat_id", chatID).Debug("Сообщение отправлено")
	}
}
