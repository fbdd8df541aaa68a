// Package medals подводит итоги дня: плотное ранжирование отчётов,
// вручение медалей с разделением мест при равенстве и публикация сводки.
// models.go описывает медали и контракт хранилища наград.
package medals

import (
	"context"
	"time"

	"easygo.ru/steps-bot/internal/features/report"
)

// Medal — медаль за место в итогах дня.
type Medal string

const (
	Gold   Medal = "gold"
	Silver Medal = "silver"
	Bronze Medal = "bronze"
)

// Symbol возвращает символ медали для сообщений и ячеек таблицы.
func (m Medal) Symbol() string {
	switch m {
	case Gold:
		return "🥇"
	case Silver:
		return "🥈"
	case Bronze:
		return "🥉"
	}
	return ""
}

// Symbols — все символы медалей в порядке отображения.
// Используется и при отрисовке, и при зачистке ячеек от старых символов.
var Symbols = []string{"🥇", "🥈", "🥉"}

// Award — одна выданная медаль в таблице medals.
// Уникальность — пара (award_date, nickname): повторное подведение итогов
// за тот же день перезаписывает медаль, а не дублирует её.
type Award struct {
	ID        int64
	UserID    *int64
	Nickname  string
	Date      time.Time // Дата, за которую выдана медаль (полночь UTC)
	Medal     Medal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RankedReport — запись о шагах с присвоенной медалью.
type RankedReport struct {
	Record report.StepRecord
	Medal  Medal
}

// Store — контракт хранилища наград.
type Store interface {
	// FindByKey возвращает медаль по ключу (дата, ник) или (nil, nil).
	FindByKey(ctx context.Context, date time.Time, nickname string) (*Award, error)
	// Upsert атомарно вставляет или обновляет медаль по ключу (дата, ник).
	Upsert(ctx context.Context, a Award) error
}
