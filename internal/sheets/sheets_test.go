package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, columnLetter(tt.n), "столбец %d", tt.n)
	}
}

func TestFindColumn(t *testing.T) {
	headers := []interface{}{"Nick", "14.08.2024", "15.08.2024"}

	assert.Equal(t, 2, findColumn(headers, "14.08.2024"))
	assert.Equal(t, 3, findColumn(headers, "15.08.2024"))
	assert.Zero(t, findColumn(headers, "16.08.2024"))
	assert.Zero(t, findColumn(nil, "14.08.2024"))
}

func TestFindRow(t *testing.T) {
	values := [][]interface{}{
		{"Nick", "15.08.2024"},
		{"вася", "8500"},
		{"Петя"},
		{}, // пустая строка посреди листа
		{"аня", "", "12000"},
	}

	t.Run("находит строку участника", func(t *testing.T) {
		assert.Equal(t, 2, findRow(values, "вася"))
		assert.Equal(t, 5, findRow(values, "аня"))
	})

	t.Run("регистр не важен", func(t *testing.T) {
		assert.Equal(t, 3, findRow(values, "петя"))
		assert.Equal(t, 2, findRow(values, "ВАСЯ"))
	})

	t.Run("заголовок не считается участником", func(t *testing.T) {
		assert.Zero(t, findRow(values, "Nick"))
	})

	t.Run("неизвестный ник", func(t *testing.T) {
		assert.Zero(t, findRow(values, "миша"))
	})
}

func TestCellText(t *testing.T) {
	values := [][]interface{}{
		{"Nick", "15.08.2024"},
		{"вася", "8500 🥇"},
	}

	assert.Equal(t, "8500 🥇", cellText(values, 2, 2))
	assert.Equal(t, "Nick", cellText(values, 1, 1))

	// За пределами заполненной части — пусто
	assert.Empty(t, cellText(values, 2, 3))
	assert.Empty(t, cellText(values, 3, 1))
	assert.Empty(t, cellText(values, 0, 1))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "вася", cellString("вася"))
	assert.Equal(t, "8500", cellString(8500))
	assert.Empty(t, cellString(nil))
}
