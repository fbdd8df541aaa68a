// Package report отвечает за приём отчётов о шагах: разбор свободного
// текста «#отчет #ник 15.08 12000», валидацию и сохранение ровно одной
// записи на пару (ник, дата).
// models.go описывает структуры данных и контракт хранилища отчётов.
package report

import (
	"context"
	"time"
)

// Parsed — результат разбора текста отчёта.
// Нулевые значения означают «поле не найдено»: пустой ник, нулевая дата,
// nil вместо количества шагов. Steps — указатель, потому что 0 шагов —
// корректное значение, отличное от «не указано».
type Parsed struct {
	Nickname string
	Date     time.Time
	Steps    *int
}

// StepRecord — одна запись о шагах в таблице reports.
// Уникальность — пара (nickname, report_date): повторный отчёт за тот же
// день перезаписывает количество шагов, дубликат не создаётся.
type StepRecord struct {
	ID        int64
	UserID    *int64    // Telegram user ID автора (nil для постов канала)
	Nickname  string    // Ник участника (#ник из отчёта)
	Date      time.Time // Календарная дата отчёта (полночь UTC)
	Steps     int       // Количество шагов за день
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store — контракт хранилища отчётов. Реализуется репозиторием PostgreSQL;
// итоги дня и ассистент читают отчёты через этот же контракт.
type Store interface {
	// UpsertByKey атомарно вставляет или обновляет запись по ключу (ник, дата).
	UpsertByKey(ctx context.Context, rec StepRecord) error
	// QueryDay возвращает все записи за одну календарную дату.
	QueryDay(ctx context.Context, date time.Time) ([]StepRecord, error)
	// QueryRange возвращает записи за период [from, to] включительно.
	QueryRange(ctx context.Context, from, to time.Time) ([]StepRecord, error)
}
