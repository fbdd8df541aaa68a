// Package assistant — ИИ-ассистент: отвечает на вопросы участников в личке.
// Схема двухшаговая: сначала классификатор решает, какие данные из базы
// нужны для ответа, затем модель отвечает с приложенным контекстом.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"easygo.ru/steps-bot/internal/common"
	"easygo.ru/steps-bot/internal/features/history"
	"easygo.ru/steps-bot/internal/features/report"
)

// contextWindowDays — за сколько дней отдаём отчёты в контекст модели.
const contextWindowDays = 30

// ReportSource отдаёт отчёты о шагах для контекста ответа.
// Реализуется репозиторием пакета report.
type ReportSource interface {
	QueryRange(ctx context.Context, from, to time.Time) ([]report.StepRecord, error)
}

// HistorySource отдаёт окно последних сообщений чата.
type HistorySource interface {
	Recent(ctx context.Context) ([]history.Message, error)
}

// NicknameResolver находит ник участника по его Telegram ID.
// Пустой parsed означает «возьми ник из профиля».
type NicknameResolver interface {
	Resolve(ctx context.Context, userID *int64, parsed string) (string, error)
}

// Service отвечает на вопросы участников через Gemini.
type Service struct {
	client   *genai.Client
	model    string
	reports  ReportSource
	history  HistorySource
	resolver NicknameResolver
}

// NewService создаёт ассистента. Если ключ API не задан, ассистент
// считается выключенным и сервис не создаётся.
func NewService(ctx context.Context, apiKey, model string, reports ReportSource, hist HistorySource, resolver NicknameResolver) (*Service, error) {
	if apiKey == "" {
		return nil, common.ErrAssistantDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент Gemini: %w", err)
	}

	return &Service{
		client:   client,
		model:    model,
		reports:  reports,
		history:  hist,
		resolver: resolver,
	}, nil
}

// HandleQuestion отвечает на вопрос участника.
// Сбой классификации не фатален: без контекста модель всё равно ответит.
func (s *Service) HandleQuestion(ctx context.Context, question string, userID *int64) (string, error) {
	d := s.classify(ctx, question)

	// Вопрос о своих шагах без имени — берём ник из профиля спрашивающего
	if d.Context == contextUserSteps && d.Nickname == "" && userID != nil {
		nickname, err := s.resolver.Resolve(ctx, userID, "")
		if err != nil {
			log.WithError(err).Warn("Не удалось определить ник спрашивающего")
		} else {
			d.Nickname = nickname
		}
	}

	return s.answer(ctx, question, s.fetchContext(ctx, d))
}

// classify — первый шаг: модель выбирает тип контекста и ник.
func (s *Service) classify(ctx context.Context, question string) decision {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(classifierSystem, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(question), cfg)
	if err != nil {
		log.WithError(err).Error("Ошибка классификации вопроса")
		return decision{Context: contextNone}
	}

	d := decodeDecision(resp.Text())
	log.WithFields(log.Fields{
		"context":  d.Context,
		"nickname": d.Nickname,
	}).Debug("Контекст вопроса определён")
	return d
}

// fetchContext собирает данные выбранного типа в текстовый блок.
// Ошибки чтения не фатальны: модель получит вопрос без контекста.
func (s *Service) fetchContext(ctx context.Context, d decision) string {
	switch d.Context {
	case contextMessageHistory:
		msgs, err := s.history.Recent(ctx)
		if err != nil {
			log.WithError(err).Error("Не удалось получить историю сообщений")
			return ""
		}
		return buildHistoryContext(msgs)

	case contextUserSteps, contextAllSteps:
		to := common.GetMoscowDate()
		from := to.AddDate(0, 0, -contextWindowDays)
		records, err := s.reports.QueryRange(ctx, from, to)
		if err != nil {
			log.WithError(err).Error("Не удалось получить отчёты для контекста")
			return ""
		}
		nickname := ""
		if d.Context == contextUserSteps {
			nickname = d.Nickname
		}
		return buildReportsContext(records, nickname)
	}

	return ""
}

// answer — второй шаг: модель отвечает на вопрос с приложенными данными.
func (s *Service) answer(ctx context.Context, question, contextText string) (string, error) {
	prompt := question
	if contextText != "" {
		prompt = fmt.Sprintf("%s\n\n<data>\n%s\n</data>", question, contextText)
	}

	system := fmt.Sprintf(answerSystem, common.FormatDate(common.GetMoscowTime()))
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("запрос к Gemini не удался: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// buildHistoryContext собирает текстовый блок из сообщений чата.
func buildHistoryContext(msgs []history.Message) string {
	if len(msgs) == 0 {
		return "No messages in the last 24 hours."
	}

	var b strings.Builder
	b.WriteString("Channel messages (last 24 h):")
	for _, m := range msgs {
		author := m.Username
		if author == "" {
			author = "?"
		}
		fmt.Fprintf(&b, "\n[%s] @%s: %s", common.FormatDateTime(m.SentAt), author, m.Text)
	}
	return b.String()
}

// buildReportsContext собирает текстовый блок из отчётов о шагах.
// Непустой nickname ограничивает выборку одним участником (регистр не важен).
func buildReportsContext(records []report.StepRecord, nickname string) string {
	filtered := records
	if nickname != "" {
		filtered = nil
		for _, r := range records {
			if strings.EqualFold(r.Nickname, nickname) {
				filtered = append(filtered, r)
			}
		}
	}

	header := fmt.Sprintf("Step reports for all users (last %d days):", contextWindowDays)
	empty := fmt.Sprintf("No step data in the last %d days.", contextWindowDays)
	if nickname != "" {
		header = fmt.Sprintf("Step reports for #%s (last %d days):", nickname, contextWindowDays)
		empty = fmt.Sprintf("No step data found for #%s in the last %d days.", nickname, contextWindowDays)
	}

	if len(filtered) == 0 {
		return empty
	}

	var b strings.Builder
	b.WriteString(header)
	for _, r := range filtered {
		fmt.Fprintf(&b, "\n%s: #%s — %s steps", common.FormatDate(r.Date), r.Nickname, common.FormatNumber(int64(r.Steps)))
	}
	return b.String()
}
