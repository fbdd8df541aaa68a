// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: вечерние итоги дня с медалями
// и ежечасную чистку окна истории.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/features/history"
	"easygo.ru/steps-bot/internal/features/medals"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron           *cron.Cron
	medalService   *medals.Service
	historyService *history.Service
	announce       func(text string)
}

// NewScheduler создаёт планировщик задач с московским часовым поясом.
// announce публикует итоги дня в канал; nil — публикация отключена.
func NewScheduler(medalService *medals.Service, historyService *history.Service, announce func(text string)) *Scheduler {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.WithError(err).Warn("Не удалось загрузить Europe/Moscow, используем UTC+3")
		loc = time.FixedZone("MSK", 3*60*60)
	}

	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:           c,
		medalService:   medalService,
		historyService: historyService,
		announce:       announce,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Итоги дня в 20:00 по Москве: медали за вчерашнюю дату
	s.cron.AddFunc("0 20 * * *", func() {
		log.Info("[CRON] Подводим итоги дня")
		if err := s.medalService.RunDaily(ctx, s.announce); err != nil {
			log.WithError(err).Error("[CRON] Ошибка подведения итогов")
		}
	})

	// Чистка окна истории каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Чистка истории сообщений")
		if err := s.historyService.Purge(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки истории")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (Europe/Moscow)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
