// Package report — repository.go отвечает за операции с таблицей reports в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// Репозиторий полностью закрывает контракт Store.
var _ Store = (*Repository)(nil)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpsertByKey вставляет запись о шагах или обновляет существующую.
// Ключ — пара (nickname, report_date): новый отчёт за тот же день
// перезаписывает количество шагов одной атомарной операцией.
// user_id не затирается, если в новом отчёте его нет (пост канала).
func (r *Repository) UpsertByKey(ctx context.Context, rec StepRecord) error {
	query := `
		INSERT INTO reports (user_id, nickname, report_date, steps)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (nickname, report_date) DO UPDATE
		SET steps = EXCLUDED.steps,
		    user_id = COALESCE(EXCLUDED.user_id, reports.user_id),
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, rec.UserID, rec.Nickname, rec.Date, rec.Steps)
	if err != nil {
		return fmt.Errorf("ошибка сохранения отчёта (%s, %s): %w",
			rec.Nickname, rec.Date.Format("2006-01-02"), err)
	}
	return nil
}

// QueryDay возвращает все записи о шагах за одну календарную дату.
func (r *Repository) QueryDay(ctx context.Context, date time.Time) ([]StepRecord, error) {
	query := `
		SELECT id, user_id, nickname, report_date, steps, created_at, updated_at
		FROM reports
		WHERE report_date = $1
		ORDER BY nickname
	`
	return r.queryRecords(ctx, query, date)
}

// QueryRange возвращает записи за период [from, to] включительно.
// Используется ассистентом для сводок за последние N дней.
func (r *Repository) QueryRange(ctx context.Context, from, to time.Time) ([]StepRecord, error) {
	query := `
		SELECT id, user_id, nickname, report_date, steps, created_at, updated_at
		FROM reports
		WHERE report_date BETWEEN $1 AND $2
		ORDER BY report_date, nickname
	`
	return r.queryRecords(ctx, query, from, to)
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]StepRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса отчётов: %w", err)
	}
	defer rows.Close()

	var out []StepRecord
	for rows.Next() {
		var rec StepRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Nickname, &rec.Date, &rec.Steps,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	return out, nil
}
