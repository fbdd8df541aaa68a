package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// фиксированное «сейчас» для детерминированных тестов дат без года
var testNow = time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFullReport(t *testing.T) {
	p := ParseAt("#отчет #alice 1.5.2024 8000", testNow)

	assert.Equal(t, "alice", p.Nickname)
	assert.Equal(t, date(2024, time.May, 1), p.Date)
	require.NotNil(t, p.Steps)
	assert.Equal(t, 8000, *p.Steps)
}

func TestParseOrderIndependence(t *testing.T) {
	// Результат не зависит от взаимного порядка метки, ника, даты и числа.
	tokens := []string{"#отчет", "#alice", "1.5.2024", "8000"}

	for _, perm := range permutations(tokens) {
		text := strings.Join(perm, " ")
		t.Run(text, func(t *testing.T) {
			p := ParseAt(text, testNow)
			assert.Equal(t, "alice", p.Nickname)
			assert.Equal(t, date(2024, time.May, 1), p.Date)
			require.NotNil(t, p.Steps)
			assert.Equal(t, 8000, *p.Steps)
		})
	}
}

// permutations возвращает все перестановки среза.
func permutations(in []string) [][]string {
	if len(in) <= 1 {
		return [][]string{append([]string(nil), in...)}
	}
	var out [][]string
	for i := range in {
		rest := make([]string, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]string{in[i]}, tail...))
		}
	}
	return out
}

func TestParseNickname(t *testing.T) {
	t.Run("метка пропускается в любом регистре", func(t *testing.T) {
		p := ParseAt("#ОТЧЕТ #Alice 8000", testNow)
		assert.Equal(t, "Alice", p.Nickname)
	})

	t.Run("ник до метки", func(t *testing.T) {
		p := ParseAt("#alice #отчет 8000", testNow)
		assert.Equal(t, "alice", p.Nickname)
	})

	t.Run("кириллический ник", func(t *testing.T) {
		p := ParseAt("#Отчет #василий_2 10000", testNow)
		assert.Equal(t, "василий_2", p.Nickname)
	})

	t.Run("только метка — ника нет", func(t *testing.T) {
		p := ParseAt("#отчет 8000", testNow)
		assert.Empty(t, p.Nickname)
	})

	t.Run("пустой текст", func(t *testing.T) {
		p := ParseAt("", testNow)
		assert.Empty(t, p.Nickname)
		assert.True(t, p.Date.IsZero())
		assert.Nil(t, p.Steps)
	})
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want time.Time
	}{
		{"полная дата", "#отчет #a 15.08.2024 100", date(2024, time.August, 15)},
		{"двузначный год", "#отчет #a 31.12.24 100", date(2024, time.December, 31)},
		{"без года — текущий", "#отчет #a 15.08 100", date(testNow.Year(), time.August, 15)},
		{"однозначные день и месяц", "#отчет #a 1.5.2024 100", date(2024, time.May, 1)},
		{"слэши", "#отчет #a 15/08/2024 100", date(2024, time.August, 15)},
		{"слэши без года", "#отчет #a 1/5 100", date(testNow.Year(), time.May, 1)},
		{"29 февраля високосного года", "#отчет #a 29.02.2024 100", date(2024, time.February, 29)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ParseAt(tc.text, testNow)
			assert.Equal(t, tc.want, p.Date)
		})
	}
}

func TestParseInvalidDate(t *testing.T) {
	t.Run("несуществующий день и месяц", func(t *testing.T) {
		p := ParseAt("#отчет #alice 32.13.2024 8000", testNow)

		// дата отброшена, но её цифры не попали в шаги
		assert.True(t, p.Date.IsZero())
		require.NotNil(t, p.Steps)
		assert.Equal(t, 8000, *p.Steps)
	})

	t.Run("29 февраля невисокосного года", func(t *testing.T) {
		p := ParseAt("#отчет #alice 29.02.2023 8000", testNow)
		assert.True(t, p.Date.IsZero())
	})

	t.Run("второе совпадение не подбирается", func(t *testing.T) {
		// после неверной даты идёт корректная — она не используется
		p := ParseAt("#отчет #alice 32.13.2024 15.08.2024", testNow)
		assert.True(t, p.Date.IsZero())
	})

	t.Run("даты нет вовсе", func(t *testing.T) {
		p := ParseAt("#отчет #alice 8000", testNow)
		assert.True(t, p.Date.IsZero())
	})
}

func TestParseSteps(t *testing.T) {
	t.Run("цифры даты не попадают в шаги", func(t *testing.T) {
		p := ParseAt("#отчет #alice 5.3.2024 12345", testNow)
		require.NotNil(t, p.Steps)
		assert.Equal(t, 12345, *p.Steps)
	})

	t.Run("число перед датой", func(t *testing.T) {
		p := ParseAt("12345 5.3.2024 #отчет #alice", testNow)
		require.NotNil(t, p.Steps)
		assert.Equal(t, 12345, *p.Steps)
	})

	t.Run("цифры ника не попадают в шаги", func(t *testing.T) {
		p := ParseAt("#отчет #user2024 7500", testNow)
		assert.Equal(t, "user2024", p.Nickname)
		require.NotNil(t, p.Steps)
		assert.Equal(t, 7500, *p.Steps)
	})

	t.Run("шагов нет", func(t *testing.T) {
		p := ParseAt("#отчет #alice 15.08.2024", testNow)
		assert.Nil(t, p.Steps)
	})

	t.Run("ноль шагов — корректное значение", func(t *testing.T) {
		p := ParseAt("#отчет #alice 0", testNow)
		require.NotNil(t, p.Steps)
		assert.Equal(t, 0, *p.Steps)
	})

	t.Run("слишком длинное число отбрасывается", func(t *testing.T) {
		p := ParseAt("#отчет #alice 99999999999999999999999999", testNow)
		assert.Nil(t, p.Steps)
	})
}

func TestParseDefaultYearFromNow(t *testing.T) {
	// год для «15.08» берётся из переданного момента времени
	now2030 := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	p := ParseAt("#отчет #a 15.08 100", now2030)
	assert.Equal(t, date(2030, time.August, 15), p.Date)
}

func TestIsReport(t *testing.T) {
	assert.True(t, IsReport("#отчет #alice 8000"))
	assert.True(t, IsReport("сегодня гуляли! #ОТЧЕТ #alice"))
	assert.False(t, IsReport("просто сообщение про 8000 шагов"))
	assert.False(t, IsReport(""))
}

func ExampleParseAt() {
	p := ParseAt("#отчет #alice 1.5.2024 8000", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	fmt.Println(p.Nickname, p.Date.Format("2006-01-02"), *p.Steps)
	// Output: alice 2024-05-01 8000
}
