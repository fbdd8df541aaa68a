// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование чисел, работа с временем.
package common

import (
	"math"
	"time"
)

// PluralizeSteps возвращает правильную форму слова «шаг» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "шаг" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "шага" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "шагов" (0, 5-20, 25-30, 100, ...)
//
// Примеры:
//
//	PluralizeSteps(1)     → "шаг"
//	PluralizeSteps(3)     → "шага"
//	PluralizeSteps(12000) → "шагов"
//	PluralizeSteps(21)    → "шаг"
func PluralizeSteps(n int) string {
	// Берём абсолютное значение для отрицательных чисел
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	// Единственное число: 1, 21, 31, 101 (но НЕ 11, 111)
	if lastDigit == 1 && lastTwoDigits != 11 {
		return "шаг"
	}

	// Малое множественное: 2-4, 22-24, 32-34 (но НЕ 12-14)
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "шага"
	}

	// Большое множественное: 0, 5-20, 25-30, 100, ...
	return "шагов"
}

// PluralizeMessages возвращает правильную форму слова «сообщение».
func PluralizeMessages(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "сообщение"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "сообщения"
	}
	return "сообщений"
}

// GetMoscowTime возвращает текущее время в часовом поясе Москвы (Europe/Moscow).
// Отчёты, итоги дня и расписание заданий привязаны к московскому времени.
func GetMoscowTime() time.Time {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Если не удалось загрузить — используем UTC+3 вручную
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return time.Now().In(loc)
}

// DateOf возвращает календарную дату момента t: полночь UTC с тем же
// годом, месяцем и днём. Все даты в базе и в ключах хранятся именно так,
// поэтому сравнение дат — это сравнение time.Time напрямую.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetMoscowDate возвращает текущую календарную дату по Москве,
// нормализованную через DateOf.
func GetMoscowDate() time.Time {
	return DateOf(GetMoscowTime())
}

// FormatDate форматирует календарную дату в формат "02.01.2006" (день.месяц.год).
// Используется в итогах дня и в заголовках столбцов таблицы.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" (день.месяц.год часы:минуты).
// Используется для отображения времени сообщений в контексте ассистента.
func FormatDateTime(t time.Time) string {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return t.In(loc).Format("02.01.2006 15:04")
}
