// Package main — ручной запуск итогов дня.
// Пересчитывает медали за указанную дату (по умолчанию — вчера по Москве)
// и публикует сводку в канал, если он настроен.
//
// Запуск:
//
//	go run ./cmd/medals
//	go run ./cmd/medals -date 15.08.2024
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/common"
	"easygo.ru/steps-bot/internal/config"
	"easygo.ru/steps-bot/internal/db/postgres"
	"easygo.ru/steps-bot/internal/features/medals"
	"easygo.ru/steps-bot/internal/features/report"
	"easygo.ru/steps-bot/internal/sheets"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	dateArg := flag.String("date", "", "дата итогов в формате ДД.ММ.ГГГГ (по умолчанию — вчера по Москве)")
	flag.Parse()

	date := common.GetMoscowDate().AddDate(0, 0, -1)
	if *dateArg != "" {
		parsed, err := time.Parse("02.01.2006", *dateArg)
		if err != nil {
			log.WithError(err).Fatal("Неверный формат даты, ожидается ДД.ММ.ГГГГ")
		}
		date = common.DateOf(parsed)
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	ctx := context.Background()

	// Схему создаёт основной бот при старте, здесь только подключаемся
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось подключиться к БД")
	}
	defer pool.Close()

	reportRepo := report.NewRepository(pool)
	medalRepo := medals.NewRepository(pool)

	var mirror medals.Mirror
	if cfg.SheetsEnabled() {
		client, err := sheets.NewClient(ctx, cfg.GoogleCredentialsPath, cfg.GoogleSheetID, cfg.WorksheetName)
		if err != nil {
			log.WithError(err).Fatal("Не удалось создать клиент Google Sheets")
		}
		mirror = client
	}

	service := medals.NewService(reportRepo, medalRepo, mirror)

	log.WithField("date", common.FormatDate(date)).Info("Пересчитываем медали")

	summary, err := service.RunForDate(ctx, date)
	if errors.Is(err, common.ErrNoReports) {
		log.WithField("date", common.FormatDate(date)).Info("За эту дату нет ни одного отчёта")
		return
	}
	if err != nil {
		log.WithError(err).Fatal("Не удалось пересчитать медали")
	}

	fmt.Println(summary)

	// Публикуем сводку в канал, как это делает вечерний крон
	if cfg.ReportChannelID != 0 {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.WithError(err).Fatal("Не удалось создать Telegram API")
		}
		if _, err := botAPI.Send(tgbotapi.NewMessage(cfg.ReportChannelID, summary)); err != nil {
			log.WithError(err).Fatal("Не удалось отправить сводку в канал")
		}
		log.WithField("chat_id", cfg.ReportChannelID).Info("Сводка отправлена в канал")
	}

	log.Info("Готово")
}
