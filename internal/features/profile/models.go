// Package profile хранит соответствие «Telegram-пользователь → #ник».
// Однажды указав ник в отчёте, участник может дальше писать «#отчет 8000» —
// ник подставится из профиля.
// models.go описывает структуру профиля и контракт хранилища.
package profile

import (
	"context"
	"time"
)

// UserProfile — профиль участника марафона.
// На одного Telegram-пользователя приходится ровно один профиль (user_id уникален);
// поле nickname обновляется, когда в свежем отчёте указан другой ник.
type UserProfile struct {
	ID        int64
	UserID    int64  // Telegram user ID (уникальный)
	Nickname  string // Последний указанный в отчётах #ник
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store — контракт хранилища профилей.
type Store interface {
	// FindByUserID возвращает профиль или (nil, nil), если профиля нет.
	FindByUserID(ctx context.Context, userID int64) (*UserProfile, error)
	// Upsert атомарно создаёт профиль или обновляет ник существующего.
	Upsert(ctx context.Context, p UserProfile) error
}
