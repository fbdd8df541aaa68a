// Package profile — resolver.go выбирает итоговый ник отчёта
// и держит профиль пользователя в актуальном состоянии.
package profile

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Resolver сводит ник из текста отчёта с сохранённым профилем.
type Resolver struct {
	store Store
}

// NewResolver создаёт резолвер ников.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve возвращает ник, под которым нужно записать отчёт.
//
// Правила:
//   - Ник из текста всегда главнее. Он возвращается как есть, а профиль
//     пользователя создаётся или обновляется — но только если сохранённый
//     ник отличается, чтобы не писать в БД впустую.
//   - Без ника в тексте берётся ник из профиля пользователя.
//   - Без профиля (или без userID — пост канала) возвращается пустая строка.
//
// Ошибка хранилища возвращается вызывающему; тот решает, принимать ли
// отчёт с ником из текста без синхронизации профиля.
func (r *Resolver) Resolve(ctx context.Context, userID *int64, parsed string) (string, error) {
	if parsed != "" {
		if userID != nil {
			if err := r.syncProfile(ctx, *userID, parsed); err != nil {
				return "", err
			}
		}
		return parsed, nil
	}

	if userID == nil {
		return "", nil
	}

	p, err := r.store.FindByUserID(ctx, *userID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", nil
	}
	return p.Nickname, nil
}

// syncProfile приводит профиль к нику из свежего отчёта.
func (r *Resolver) syncProfile(ctx context.Context, userID int64, nickname string) error {
	existing, err := r.store.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Nickname == nickname {
		// Ник не менялся — обновлять нечего.
		return nil
	}

	if err := r.store.Upsert(ctx, UserProfile{UserID: userID, Nickname: nickname}); err != nil {
		return err
	}

	if existing == nil {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"nickname": nickname,
		}).Info("Создан профиль участника")
	} else {
		log.WithFields(log.Fields{
			"user_id": userID,
			"old":     existing.Nickname,
			"new":     nickname,
		}).Info("Ник участника обновлён")
	}
	return nil
}
