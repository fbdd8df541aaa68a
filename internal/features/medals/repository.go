// Package medals — repository.go отвечает за операции с таблицей medals в БД.
package medals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

var _ Store = (*Repository)(nil)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FindByKey возвращает медаль по ключу (дата, ник).
// Отсутствие медали — не ошибка: возвращается (nil, nil).
func (r *Repository) FindByKey(ctx context.Context, date time.Time, nickname string) (*Award, error) {
	query := `
		SELECT id, user_id, nickname, award_date, medal, created_at, updated_at
		FROM medals
		WHERE award_date = $1 AND nickname = $2
	`
	var a Award
	err := r.db.QueryRow(ctx, query, date, nickname).Scan(
		&a.ID, &a.UserID, &a.Nickname, &a.Date, &a.Medal,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения медали (%s, %s): %w",
			date.Format("2006-01-02"), nickname, err)
	}
	return &a, nil
}

// Upsert вставляет медаль или обновляет существующую.
// Ключ — пара (award_date, nickname): пересчёт итогов за день
// перезаписывает медаль одной атомарной операцией.
func (r *Repository) Upsert(ctx context.Context, a Award) error {
	query := `
		INSERT INTO medals (user_id, nickname, award_date, medal)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (award_date, nickname) DO UPDATE
		SET medal = EXCLUDED.medal,
		    user_id = COALESCE(EXCLUDED.user_id, medals.user_id),
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, a.UserID, a.Nickname, a.Date, string(a.Medal))
	if err != nil {
		return fmt.Errorf("ошибка сохранения медали (%s, %s): %w",
			a.Date.Format("2006-01-02"), a.Nickname, err)
	}
	return nil
}
