// Package history хранит скользящее окно сообщений чата.
// Окно служит контекстом для ассистента; сообщения старше срока
// хранения регулярно удаляются фоновым заданием.
// models.go описывает сообщение и контракт хранилища.
package history

import (
	"context"
	"time"
)

// Message — одно сохранённое сообщение чата.
type Message struct {
	ID        int64
	MessageID int   // ID сообщения в Telegram
	ChatID    int64 // Чат, откуда пришло сообщение
	UserID    *int64
	Username  string // @username или имя автора (для постов канала — пусто)
	Text      string
	SentAt    time.Time
}

// Store — контракт хранилища сообщений.
type Store interface {
	// Save добавляет сообщение в окно истории.
	Save(ctx context.Context, m Message) error
	// Recent возвращает последние limit сообщений в хронологическом порядке.
	Recent(ctx context.Context, limit int) ([]Message, error)
	// DeleteOlderThan удаляет сообщения старше порога и возвращает их число.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
