// Package medals — service.go подводит итоги дня.
// Сервис запускается кроном в 20:00 по Москве за предыдущий день,
// а также вручную утилитой cmd/medals за произвольную дату.
package medals

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/common"
	"easygo.ru/steps-bot/internal/features/report"
)

// Mirror проставляет символ медали в ячейке Google-таблицы.
type Mirror interface {
	WriteMedal(ctx context.Context, nickname string, date time.Time, symbol string) error
}

// Service подводит итоги дня и раздаёт медали.
type Service struct {
	reports report.Store
	awards  Store
	mirror  Mirror // nil — зеркало отключено
}

// NewService создаёт сервис итогов дня.
func NewService(reports report.Store, awards Store, mirror Mirror) *Service {
	return &Service{reports: reports, awards: awards, mirror: mirror}
}

// RunDaily подводит итоги за вчерашний день по Москве и публикует сводку
// через announce. День без отчётов — не ошибка: итоги просто пропускаются.
func (s *Service) RunDaily(ctx context.Context, announce func(text string)) error {
	date := common.GetMoscowDate().AddDate(0, 0, -1)

	summary, err := s.RunForDate(ctx, date)
	if errors.Is(err, common.ErrNoReports) {
		log.WithField("date", common.FormatDate(date)).Info("Отчётов за день нет, итоги пропущены")
		return nil
	}
	if err != nil {
		return err
	}

	if announce != nil {
		announce(summary)
	}
	return nil
}

// RunForDate подводит итоги за конкретную дату: ранжирует отчёты,
// сохраняет медали, проставляет символы в таблице и возвращает сводку.
// Повторный запуск за ту же дату перезаписывает медали, не дублируя их.
//
// Возвращает common.ErrNoReports, если за дату нет ни одного отчёта.
func (s *Service) RunForDate(ctx context.Context, date time.Time) (string, error) {
	records, err := s.reports.QueryDay(ctx, date)
	if err != nil {
		return "", fmt.Errorf("не удалось получить отчёты за %s: %w", common.FormatDate(date), err)
	}
	if len(records) == 0 {
		return "", common.ErrNoReports
	}

	ranked := AssignMedals(records)

	for _, rr := range ranked {
		if err := s.storeAward(ctx, date, rr); err != nil {
			return "", err
		}
	}

	log.WithFields(log.Fields{
		"date":    common.FormatDate(date),
		"reports": len(records),
		"awards":  len(ranked),
	}).Info("Итоги дня подведены")

	return RenderSummary(date, ranked), nil
}

// storeAward сохраняет одну медаль и отражает её в таблице.
func (s *Service) storeAward(ctx context.Context, date time.Time, rr RankedReport) error {
	existing, err := s.awards.FindByKey(ctx, date, rr.Record.Nickname)
	if err != nil {
		return err
	}
	if existing != nil && existing.Medal != rr.Medal {
		log.WithFields(log.Fields{
			"nickname": rr.Record.Nickname,
			"old":      existing.Medal,
			"new":      rr.Medal,
		}).Info("Медаль пересчитана")
	}

	award := Award{
		UserID:   rr.Record.UserID,
		Nickname: rr.Record.Nickname,
		Date:     date,
		Medal:    rr.Medal,
	}
	if err := s.awards.Upsert(ctx, award); err != nil {
		return fmt.Errorf("не удалось сохранить медаль (%s): %w", rr.Record.Nickname, err)
	}

	if s.mirror != nil {
		if err := s.mirror.WriteMedal(ctx, rr.Record.Nickname, date, rr.Medal.Symbol()); err != nil {
			// Таблица — зеркало: её недоступность не отменяет итоги.
			log.WithError(err).WithField("nickname", rr.Record.Nickname).Warn("Не удалось проставить медаль в таблице")
		}
	}
	return nil
}
