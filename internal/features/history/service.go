// Package history — service.go управляет окном истории сообщений.
package history

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"easygo.ru/steps-bot/internal/common"
)

// Service ведёт окно истории: записывает входящие сообщения,
// отдаёт срез для контекста ассистента и чистит устаревшее.
type Service struct {
	store      Store
	retention  time.Duration // сколько храним
	fetchLimit int           // сколько отдаём за раз
}

// NewService создаёт сервис истории сообщений.
func NewService(store Store, retention time.Duration, fetchLimit int) *Service {
	return &Service{store: store, retention: retention, fetchLimit: fetchLimit}
}

// Record сохраняет входящее сообщение в окно истории.
func (s *Service) Record(ctx context.Context, m Message) error {
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	if err := s.store.Save(ctx, m); err != nil {
		return fmt.Errorf("не удалось записать сообщение в историю: %w", err)
	}
	return nil
}

// Recent возвращает последние сообщения окна в хронологическом порядке.
// Размер окна ограничен лимитом из конфигурации.
func (s *Service) Recent(ctx context.Context) ([]Message, error) {
	return s.store.Recent(ctx, s.fetchLimit)
}

// Purge удаляет сообщения старше срока хранения.
// Запускается кроном каждый час.
func (s *Service) Purge(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	n, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("не удалось почистить историю: %w", err)
	}
	if n > 0 {
		log.Infof("Из истории удалено %d %s", n, common.PluralizeMessages(int(n)))
	}
	return nil
}
