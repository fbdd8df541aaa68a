// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/bot"
	"easygo.ru/steps-bot/internal/bot/filters"
	"easygo.ru/steps-bot/internal/config"
	"easygo.ru/steps-bot/internal/db/postgres"
	"easygo.ru/steps-bot/internal/features/assistant"
	"easygo.ru/steps-bot/internal/features/history"
	"easygo.ru/steps-bot/internal/features/medals"
	"easygo.ru/steps-bot/internal/features/profile"
	"easygo.ru/steps-bot/internal/features/report"
	"easygo.ru/steps-bot/internal/jobs"
	"easygo.ru/steps-bot/internal/sheets"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	profileRepo := profile.NewRepository(pool)
	reportRepo := report.NewRepository(pool)
	medalRepo := medals.NewRepository(pool)
	historyRepo := history.NewRepository(pool)

	// === 4. Зеркало в Google Sheets (опционально) ===
	var mirror *sheets.Client
	if cfg.SheetsEnabled() {
		mirror, err = sheets.NewClient(ctx, cfg.GoogleCredentialsPath, cfg.GoogleSheetID, cfg.WorksheetName)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания клиента Google Sheets: %w", err)
		}
		log.WithField("sheet_id", cfg.GoogleSheetID).Info("Зеркало Google Sheets включено")
	} else {
		log.Info("GOOGLE_SHEET_ID не задан — зеркало Google Sheets отключено")
	}

	// === 5. Сервисы ===
	resolver := profile.NewResolver(profileRepo)
	historyService := history.NewService(historyRepo, cfg.HistoryRetention, cfg.HistoryFetchLimit)

	// Типизированный nil (*sheets.Client) в интерфейсе — уже не nil,
	// поэтому присваиваем только живой клиент.
	var reportMirror report.Mirror
	var medalMirror medals.Mirror
	if mirror != nil {
		reportMirror = mirror
		medalMirror = mirror
	}

	reportService := report.NewService(reportRepo, resolver, reportMirror)
	medalService := medals.NewService(reportRepo, medalRepo, medalMirror)

	// Ассистент включается только при заданном ключе API
	var assistantHandler *assistant.Handler
	if cfg.AssistantEnabled() {
		assistantService, err := assistant.NewService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, reportRepo, historyService, resolver)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания ассистента: %w", err)
		}
		assistantHandler = assistant.NewHandler(assistantService, botAPI)
		log.WithField("model", cfg.GeminiModel).Info("ИИ-ассистент включён")
	} else {
		log.Info("GEMINI_API_KEY не задан — ассистент отключён")
	}

	// === 6. Обработчики и фильтры ===
	reportHandler := report.NewHandler(reportService, botAPI)
	chatFilter := filters.NewChatFilter(cfg.AllowedChatIDs, profileRepo, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		reportHandler,
		assistantHandler,
		historyService,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	// Итоги дня уходят в канал, если он настроен
	var announce func(text string)
	if cfg.ReportChannelID != 0 {
		channelID := cfg.ReportChannelID
		announce = func(text string) { b.SendToChat(channelID, text) }
	} else {
		log.Info("REPORT_CHANNEL_ID не задан — итоги дня не публикуются")
	}
	scheduler := jobs.NewScheduler(medalService, historyService, announce)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Инициализируем систему миграций
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	// Выполняем миграции по порядку
	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Profiles},
		{2, migration002Reports},
		{3, migration003Medals},
		{4, migration004Messages},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    nickname VARCHAR(255) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);
`

var migration002Reports = `
CREATE TABLE IF NOT EXISTS reports (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    nickname VARCHAR(255) NOT NULL,
    report_date DATE NOT NULL,
    steps INTEGER NOT NULL CHECK (steps >= 0),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (nickname, report_date)
);
CREATE INDEX IF NOT EXISTS idx_reports_report_date ON reports(report_date);
CREATE INDEX IF NOT EXISTS idx_reports_nickname ON reports(nickname);
`

var migration003Medals = `
CREATE TABLE IF NOT EXISTS medals (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    nickname VARCHAR(255) NOT NULL,
    award_date DATE NOT NULL,
    medal VARCHAR(16) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (award_date, nickname)
);
CREATE INDEX IF NOT EXISTS idx_medals_award_date ON medals(award_date);
`

var migration004Messages = `
CREATE TABLE IF NOT EXISTS messages (
    id BIGSERIAL PRIMARY KEY,
    message_id BIGINT NOT NULL,
    chat_id BIGINT NOT NULL,
    user_id BIGINT,
    username VARCHAR(255),
    text TEXT NOT NULL,
    sent_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_sent_at ON messages(sent_at);
`
