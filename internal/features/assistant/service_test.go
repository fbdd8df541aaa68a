package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easygo.ru/steps-bot/internal/features/history"
	"easygo.ru/steps-bot/internal/features/report"
)

// --- Фейки источников контекста ---

type fakeReports struct {
	records  []report.StepRecord
	from, to time.Time
	calls    int
	err      error
}

func (f *fakeReports) QueryRange(_ context.Context, from, to time.Time) ([]report.StepRecord, error) {
	f.calls++
	f.from, f.to = from, to
	return f.records, f.err
}

type fakeHistory struct {
	msgs  []history.Message
	calls int
	err   error
}

func (f *fakeHistory) Recent(_ context.Context) ([]history.Message, error) {
	f.calls++
	return f.msgs, f.err
}

// --- Разбор ответа классификатора ---

func TestDecodeDecision(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want decision
	}{
		{
			name: "чистый JSON",
			raw:  `{"context": "all_steps", "nickname": null}`,
			want: decision{Context: contextAllSteps},
		},
		{
			name: "JSON с ником",
			raw:  `{"context": "user_steps", "nickname": "аня"}`,
			want: decision{Context: contextUserSteps, Nickname: "аня"},
		},
		{
			name: "markdown-ограждение с меткой json",
			raw:  "```json\n{\"context\": \"message_history\", \"nickname\": null}\n```",
			want: decision{Context: contextMessageHistory},
		},
		{
			name: "markdown-ограждение без метки",
			raw:  "```\n{\"context\": \"none\", \"nickname\": null}\n```",
			want: decision{Context: contextNone},
		},
		{
			name: "ник нормализуется: решётка и регистр",
			raw:  `{"context": "user_steps", "nickname": "#Аня"}`,
			want: decision{Context: contextUserSteps, Nickname: "аня"},
		},
		{
			name: "мусор вместо JSON",
			raw:  "Извините, я не могу ответить",
			want: decision{Context: contextNone},
		},
		{
			name: "неизвестный тип контекста",
			raw:  `{"context": "everything", "nickname": "аня"}`,
			want: decision{Context: contextNone},
		},
		{
			name: "пустая строка",
			raw:  "",
			want: decision{Context: contextNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeDecision(tt.raw))
		})
	}
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFence(`{"a":1}`))
}

// --- Сборка контекста ---

func TestBuildHistoryContext(t *testing.T) {
	t.Run("пустая история", func(t *testing.T) {
		assert.Equal(t, "No messages in the last 24 hours.", buildHistoryContext(nil))
	})

	t.Run("сообщения с авторами", func(t *testing.T) {
		// 09:30 UTC = 12:30 по Москве
		sentAt := time.Date(2024, 8, 15, 9, 30, 0, 0, time.UTC)
		msgs := []history.Message{
			{Username: "ivan", Text: "всем привет", SentAt: sentAt},
			{Username: "", Text: "пост канала", SentAt: sentAt.Add(time.Minute)},
		}

		got := buildHistoryContext(msgs)

		want := "Channel messages (last 24 h):\n" +
			"[15.08.2024 12:30] @ivan: всем привет\n" +
			"[15.08.2024 12:31] @?: пост канала"
		assert.Equal(t, want, got)
	})
}

func TestBuildReportsContext(t *testing.T) {
	day := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
	records := []report.StepRecord{
		{Nickname: "аня", Date: day, Steps: 12000},
		{Nickname: "борис", Date: day, Steps: 9500},
		{Nickname: "аня", Date: day.AddDate(0, 0, 1), Steps: 7000},
	}

	t.Run("все участники", func(t *testing.T) {
		got := buildReportsContext(records, "")

		want := "Step reports for all users (last 30 days):\n" +
			"15.08.2024: #аня — 12 000 steps\n" +
			"15.08.2024: #борис — 9 500 steps\n" +
			"16.08.2024: #аня — 7 000 steps"
		assert.Equal(t, want, got)
	})

	t.Run("фильтр по нику без учёта регистра", func(t *testing.T) {
		got := buildReportsContext(records, "АНЯ")

		want := "Step reports for #АНЯ (last 30 days):\n" +
			"15.08.2024: #аня — 12 000 steps\n" +
			"16.08.2024: #аня — 7 000 steps"
		assert.Equal(t, want, got)
	})

	t.Run("нет данных по нику", func(t *testing.T) {
		got := buildReportsContext(records, "вера")
		assert.Equal(t, "No step data found for #вера in the last 30 days.", got)
	})

	t.Run("нет данных вообще", func(t *testing.T) {
		got := buildReportsContext(nil, "")
		assert.Equal(t, "No step data in the last 30 days.", got)
	})
}

// --- Выбор источника контекста ---

func TestFetchContextRouting(t *testing.T) {
	t.Run("none не трогает источники", func(t *testing.T) {
		reports := &fakeReports{}
		hist := &fakeHistory{}
		svc := &Service{reports: reports, history: hist}

		got := svc.fetchContext(context.Background(), decision{Context: contextNone})

		assert.Empty(t, got)
		assert.Zero(t, reports.calls)
		assert.Zero(t, hist.calls)
	})

	t.Run("история сообщений", func(t *testing.T) {
		hist := &fakeHistory{msgs: []history.Message{{Username: "ivan", Text: "привет"}}}
		svc := &Service{history: hist}

		got := svc.fetchContext(context.Background(), decision{Context: contextMessageHistory})

		assert.Contains(t, got, "@ivan: привет")
		assert.Equal(t, 1, hist.calls)
	})

	t.Run("окно отчётов — 30 дней по календарю", func(t *testing.T) {
		reports := &fakeReports{}
		svc := &Service{reports: reports}

		svc.fetchContext(context.Background(), decision{Context: contextAllSteps})

		require.Equal(t, 1, reports.calls)
		assert.True(t, reports.to.AddDate(0, 0, -contextWindowDays).Equal(reports.from))
		assert.Zero(t, reports.to.Hour())
		assert.Equal(t, time.UTC, reports.to.Location())
	})

	t.Run("ник из решения ограничивает выборку", func(t *testing.T) {
		day := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
		reports := &fakeReports{records: []report.StepRecord{
			{Nickname: "аня", Date: day, Steps: 12000},
			{Nickname: "борис", Date: day, Steps: 9500},
		}}
		svc := &Service{reports: reports}

		got := svc.fetchContext(context.Background(), decision{Context: contextUserSteps, Nickname: "аня"})

		assert.Contains(t, got, "#аня")
		assert.NotContains(t, got, "#борис")
	})

	t.Run("ошибка источника даёт пустой контекст", func(t *testing.T) {
		reports := &fakeReports{err: errors.New("база недоступна")}
		svc := &Service{reports: reports}

		got := svc.fetchContext(context.Background(), decision{Context: contextAllSteps})

		assert.Empty(t, got)
	})
}
