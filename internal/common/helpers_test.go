package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeSteps(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "шагов"},
		{1, "шаг"},
		{2, "шага"},
		{4, "шага"},
		{5, "шагов"},
		{11, "шагов"},
		{12, "шагов"},
		{14, "шагов"},
		{21, "шаг"},
		{22, "шага"},
		{100, "шагов"},
		{101, "шаг"},
		{111, "шагов"},
		{12000, "шагов"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PluralizeSteps(tc.n), "n=%d", tc.n)
	}
}

func TestPluralizeMessages(t *testing.T) {
	assert.Equal(t, "сообщение", PluralizeMessages(1))
	assert.Equal(t, "сообщения", PluralizeMessages(3))
	assert.Equal(t, "сообщений", PluralizeMessages(7))
	assert.Equal(t, "сообщений", PluralizeMessages(11))
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1 000"},
		{2350, "2 350"},
		{12000, "12 000"},
		{1234567, "1 234 567"},
		{-8500, "-8 500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.n))
	}
}

func TestFormatSteps(t *testing.T) {
	assert.Equal(t, "12 000 шагов", FormatSteps(12000))
	assert.Equal(t, "1 шаг", FormatSteps(1))
	assert.Equal(t, "8 500 шагов", FormatSteps(8500))
	assert.Equal(t, "22 шага", FormatSteps(22))
}

func TestDateOf(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	t.Run("нормализует к полуночи UTC", func(t *testing.T) {
		d := DateOf(time.Date(2024, 5, 1, 23, 59, 0, 0, msk))
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("берёт календарный день в исходной зоне", func(t *testing.T) {
		// 00:30 по Москве — это ещё предыдущий день по UTC,
		// но календарная дата должна быть московской.
		d := DateOf(time.Date(2024, 5, 2, 0, 30, 0, 0, msk))
		assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), d)
	})
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31.12.2024", FormatDate(d))
}
