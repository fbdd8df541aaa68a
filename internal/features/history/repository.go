// Package history — repository.go отвечает за операции с таблицей messages в БД.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

var _ Store = (*Repository)(nil)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save добавляет сообщение в историю.
func (r *Repository) Save(ctx context.Context, m Message) error {
	query := `
		INSERT INTO messages (message_id, chat_id, user_id, username, text, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, m.MessageID, m.ChatID, m.UserID, m.Username, m.Text, m.SentAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сообщения: %w", err)
	}
	return nil
}

// Recent возвращает последние limit сообщений в хронологическом порядке.
// Выборка идёт с конца (свежие первыми), затем разворачивается.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Message, error) {
	query := `
		SELECT id, message_id, chat_id, user_id, username, text, sent_at
		FROM messages
		ORDER BY sent_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса истории: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.MessageID, &m.ChatID, &m.UserID, &m.Username, &m.Text, &m.SentAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	// разворачиваем в хронологический порядок
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// DeleteOlderThan удаляет сообщения старше порога.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE sent_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки истории: %w", err)
	}
	return tag.RowsAffected(), nil
}
