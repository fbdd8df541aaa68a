// Package common — pluralize.go содержит вспомогательные функции
// для форматирования чисел в сообщениях бота.
// Основная логика плюрализации реализована в helpers.go,
// этот файл экспортирует дополнительные утилиты.
package common

import "fmt"

// FormatSteps создаёт строку вида "12 000 шагов" или "1 шаг".
// Число форматируется с разделителями тысяч, слово склоняется.
//
// Примеры:
//
//	FormatSteps(12000) → "12 000 шагов"
//	FormatSteps(1)     → "1 шаг"
//	FormatSteps(8500)  → "8 500 шагов"
func FormatSteps(steps int) string {
	return fmt.Sprintf("%s %s", FormatNumber(int64(steps)), PluralizeSteps(steps))
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	// Простая реализация для чисел до миллиарда
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Рекурсивно добавляем разделители
	rest := n / 1000
	last := n % 1000

	if rest > 0 {
		return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
	}
	return fmt.Sprintf("%d", last)
}
