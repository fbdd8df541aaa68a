// Package report — service.go содержит бизнес-логику приёма отчётов.
// Сервис связывает разбор текста, резолвер ников и хранилище записей.
package report

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/common"
)

// NicknameResolver выбирает итоговый ник: из текста отчёта или из профиля.
// Реализуется резолвером пакета profile.
type NicknameResolver interface {
	Resolve(ctx context.Context, userID *int64, parsed string) (string, error)
}

// Mirror — внешняя поверхность, куда дублируются принятые отчёты
// (Google-таблица марафона).
type Mirror interface {
	WriteSteps(ctx context.Context, nickname string, date time.Time, steps int) error
}

// Service принимает отчёты: разбирает текст, валидирует и сохраняет
// ровно одну запись на пару (ник, дата).
type Service struct {
	store    Store
	resolver NicknameResolver
	mirror   Mirror // nil — зеркало отключено
}

// NewService создаёт сервис приёма отчётов.
func NewService(store Store, resolver NicknameResolver, mirror Mirror) *Service {
	return &Service{store: store, resolver: resolver, mirror: mirror}
}

// Accept обрабатывает текст отчёта от пользователя userID
// (nil — пост канала, автора нет). Возвращает сохранённую запись.
//
// Ошибки валидации: common.ErrNicknameMissing, common.ErrStepsMissing.
// Дата, не указанная в тексте, — текущий день по Москве.
func (s *Service) Accept(ctx context.Context, userID *int64, text string) (*StepRecord, error) {
	return s.acceptAt(ctx, userID, text, common.GetMoscowTime())
}

// acceptAt — Accept с фиксированным «сейчас» для детерминированных тестов.
func (s *Service) acceptAt(ctx context.Context, userID *int64, text string, now time.Time) (*StepRecord, error) {
	parsed := ParseAt(text, now)

	nickname, err := s.resolver.Resolve(ctx, userID, parsed.Nickname)
	if err != nil {
		// Профиль не синхронизировался — отчёт всё равно принимаем
		// с ником из текста, если он там был.
		log.WithError(err).Warn("Не удалось синхронизировать профиль")
		nickname = parsed.Nickname
	}
	if nickname == "" {
		return nil, common.ErrNicknameMissing
	}
	if parsed.Steps == nil {
		return nil, common.ErrStepsMissing
	}

	date := parsed.Date
	if date.IsZero() {
		date = common.DateOf(now)
	}

	rec := StepRecord{
		UserID:   userID,
		Nickname: nickname,
		Date:     date,
		Steps:    *parsed.Steps,
	}
	if err := s.store.UpsertByKey(ctx, rec); err != nil {
		return nil, fmt.Errorf("не удалось сохранить отчёт: %w", err)
	}

	log.WithFields(log.Fields{
		"nickname": nickname,
		"date":     common.FormatDate(date),
		"steps":    rec.Steps,
	}).Info("Отчёт принят")

	if s.mirror != nil {
		if err := s.mirror.WriteSteps(ctx, nickname, date, rec.Steps); err != nil {
			// Таблица — зеркало, а не источник истины: ошибку только логируем.
			log.WithError(err).WithField("nickname", nickname).Warn("Не удалось записать шаги в таблицу")
		}
	}

	return &rec, nil
}
