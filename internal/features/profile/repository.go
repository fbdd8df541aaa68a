// Package profile — repository.go отвечает за операции с таблицей profiles в БД.
package profile

import (
	"context"
	"errors"
	"fmt"

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

// FindByUserID возвращает профиль пользователя.
// Отсутствие профиля — не ошибка: возвращается (nil, nil).
func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*UserProfile, error) {
	query := `
		SELECT id, user_id, nickname, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var p UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Nickname, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения профиля (user_id=%d): %w", userID, err)
	}
	return &p, nil
}

// Upsert создаёт профиль или обновляет ник существующего.
// На конфликте по user_id перезаписывается только nickname.
func (r *Repository) Upsert(ctx context.Context, p UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, nickname)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET nickname = EXCLUDED.nickname,
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, p.UserID, p.Nickname); err != nil {
		return fmt.Errorf("ошибка сохранения профиля (user_id=%d): %w", p.UserID, err)
	}
	return nil
}

// Exists проверяет, есть ли у пользователя профиль.
// Используется фильтром доступа к личным сообщениям.
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования профиля: %w", err)
	}
	return exists, nil
}
