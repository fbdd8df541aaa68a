// Package report — parser.go разбирает свободный текст отчёта.
// Порядок слов в сообщении не важен: «#отчет #ник 15.08 12000» и
// «12000 15.08 #ник #отчет» дают одинаковый результат.
// Разбор никогда не возвращает ошибку: ненайденное поле остаётся пустым,
// решение о валидности отчёта принимает вызывающий код.
package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"easygo.ru/steps-bot/internal/common"
)

// Tag — метка отчёта. Сообщение считается отчётом,
// если содержит #отчет в любом регистре.
const Tag = "отчет"

var (
	// Хэштег: решётка и последовательность юникодных букв, цифр, подчёркиваний.
	hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	// Дата с точками: Д.М, Д.М.ГГГГ или Д.М.ГГ.
	// Разделитель внутри одной даты не смешивается, поэтому
	// точки и слэши — два отдельных шаблона.
	dateDotRe = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})(?:\.(\d{4}|\d{2}))?\b`)
	// Дата со слэшами: Д/М, Д/М/ГГГГ или Д/М/ГГ.
	dateSlashRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)
	// Количество шагов: первая непрерывная последовательность цифр,
	// оставшаяся после удаления дат и хэштегов.
	stepsRe = regexp.MustCompile(`\d+`)
)

// IsReport сообщает, помечен ли текст как отчёт.
func IsReport(text string) bool {
	return strings.Contains(strings.ToLower(text), "#"+Tag)
}

// Parse разбирает текст отчёта. Для дат без года подставляется
// текущий год по Москве.
func Parse(text string) Parsed {
	return ParseAt(text, common.GetMoscowTime())
}

// ParseAt разбирает текст отчёта; now задаёт год для дат вида «15.08».
// Вынесен отдельно, чтобы разбор был детерминированным в тестах.
func ParseAt(text string, now time.Time) Parsed {
	return Parsed{
		Nickname: extractNickname(text),
		Date:     extractDate(text, now.Year()),
		Steps:    extractSteps(text),
	}
}

// extractNickname возвращает первый #хэштег, не являющийся меткой отчёта.
// Сканирование идёт слева направо по исходному тексту, поэтому результат
// не зависит от того, где стоит сама метка #отчет.
func extractNickname(text string) string {
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		if strings.ToLower(m[1]) != Tag {
			return m[1]
		}
	}
	return ""
}

// extractDate возвращает календарную дату из первого совпадения Д.М[.Г].
// Двузначный год трактуется как 2000+Г, отсутствующий — как currentYear.
// Календарно неверная дата (32.13 и подобные) отбрасывается целиком:
// дата остаётся нулевой, второе совпадение не ищется.
func extractDate(text string, currentYear int) time.Time {
	m := earliestDateMatch(text)
	if m == nil {
		return time.Time{}
	}

	day, _ := strconv.Atoi(group(text, m, 1))
	month, _ := strconv.Atoi(group(text, m, 2))

	year := currentYear
	switch ys := group(text, m, 3); len(ys) {
	case 2:
		v, _ := strconv.Atoi(ys)
		year = 2000 + v
	case 4:
		year, _ = strconv.Atoi(ys)
	}

	// time.Date молча нормализует переполнение (32 января → 1 февраля),
	// поэтому валидность проверяем обратным сравнением компонент.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}
	}
	return d
}

// earliestDateMatch находит самое раннее в тексте совпадение даты
// среди обоих шаблонов. При равных позициях приоритет у точек.
func earliestDateMatch(text string) []int {
	dot := dateDotRe.FindStringSubmatchIndex(text)
	slash := dateSlashRe.FindStringSubmatchIndex(text)

	switch {
	case dot == nil:
		return slash
	case slash == nil:
		return dot
	case slash[0] < dot[0]:
		return slash
	default:
		return dot
	}
}

// group возвращает текст подгруппы n совпадения idx (пустая строка,
// если группа не участвовала в совпадении).
func group(text string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return text[idx[2*n]:idx[2*n+1]]
}

// extractSteps возвращает количество шагов: первое отдельно стоящее число,
// оставшееся после удаления всех дат и всех хэштегов. Удаление гарантирует,
// что цифры даты или ника не будут приняты за шаги.
func extractSteps(text string) *int {
	cleaned := dateDotRe.ReplaceAllString(text, " ")
	cleaned = dateSlashRe.ReplaceAllString(cleaned, " ")
	cleaned = hashtagRe.ReplaceAllString(cleaned, " ")

	token := stepsRe.FindString(cleaned)
	if token == "" {
		return nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		// цифровая последовательность длиннее int — это не шаги
		return nil
	}
	return &n
}
