// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки разбора отчётов
var (
	// ErrNicknameMissing — в отчёте нет ни одного #ника (кроме метки #отчет)
	ErrNicknameMissing = errors.New("отсутствует #ник")
	// ErrStepsMissing — в отчёте не удалось найти количество шагов
	ErrStepsMissing = errors.New("отсутствует количество шагов")
)

// Ошибки подведения итогов
var (
	// ErrNoReports — за указанную дату нет ни одного отчёта
	ErrNoReports = errors.New("нет отчётов за указанную дату")
)

// Ошибки ассистента
var (
	// ErrAssistantDisabled — ИИ-ассистент не настроен (нет API-ключа)
	ErrAssistantDisabled = errors.New("ии-ассистент не настроен")
)
