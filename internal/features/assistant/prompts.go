// Package assistant — prompts.go содержит промпты и разбор ответа классификатора.
// Промпты написаны по-английски: так классификатор стабильнее держит формат
// JSON, а модель ответа сама переключается на язык вопроса.
package assistant

import (
	"encoding/json"
	"strings"
)

// Типы контекста, которые умеет запрашивать классификатор.
const (
	contextNone           = "none"
	contextMessageHistory = "message_history"
	contextUserSteps      = "user_steps"
	contextAllSteps       = "all_steps"
)

// classifierSystem — системный промпт первого шага: модель решает,
// какие данные из базы нужны для ответа, и возвращает строгий JSON.
const classifierSystem = `You are a context router for a Telegram step-tracking fitness bot.

The bot stores the following data:
- "none"             — no database data needed (greetings, general questions, etc.)
- "message_history"  — all text messages posted in the channel in the last 24 h
- "user_steps"       — step reports for a single user, identified by nickname
- "all_steps"        — step reports for every user (last 30 days)

Analyse the user's question and return JSON with exactly two fields:
  "context":  one of "none", "message_history", "user_steps", "all_steps"
  "nickname": null, or the nickname mentioned in the question (lowercase, without #)

Rules:
- Set "nickname" only when "context" is "user_steps" AND the question names a specific person.
- If the user asks about themselves without naming anyone, set "nickname" to null.
- Prefer "user_steps" over "all_steps" when the question is clearly about one person.`

// answerSystem — системный промпт второго шага. %s — сегодняшняя дата.
const answerSystem = `You are a helpful assistant for a step-tracking fitness challenge in a Telegram channel.
Today is %s. Answer in the same language as the question (usually Russian).
Be concise and precise. If the provided data is insufficient to answer, say so clearly.`

// decision — разобранный ответ классификатора.
type decision struct {
	Context  string `json:"context"`
	Nickname string `json:"nickname"`
}

// decodeDecision разбирает JSON-ответ классификатора.
// Модель иногда заворачивает JSON в markdown-ограждение ``` — срезаем его.
// Любой мусор на входе превращается в безопасное решение «без контекста».
func decodeDecision(raw string) decision {
	s := stripFence(strings.TrimSpace(raw))

	var d decision
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return decision{Context: contextNone}
	}

	switch d.Context {
	case contextNone, contextMessageHistory, contextUserSteps, contextAllSteps:
	default:
		return decision{Context: contextNone}
	}

	d.Nickname = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d.Nickname), "#"))
	return d
}

// stripFence срезает markdown-ограждение ```json ... ``` вокруг текста.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Первая строка после ``` — языковая метка, выбрасываем её целиком
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
