// Package sheets зеркалирует отчёты и медали в Google-таблицу.
// Таблица — человекочитаемая витрина: первая строка — даты, первый
// столбец — ники, в ячейках — шаги и символы медалей. Источник истины —
// PostgreSQL, поэтому вызывающие стороны не считают ошибки зеркала фатальными.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"easygo.ru/steps-bot/internal/common"
	"easygo.ru/steps-bot/internal/features/medals"
)

// headerNick — заголовок первого столбца, создаётся на пустом листе.
const headerNick = "Nick"

// Client пишет в одну Google-таблицу.
// Запись — это «прочитал лист, нашёл ячейку, записал», поэтому все
// операции сериализуются мьютексом: бот и крон не должны гонять
// друг друга за одну и ту же ячейку.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string

	mu sync.Mutex
}

// NewClient создаёт клиент Google Sheets с ключом сервисного аккаунта.
func NewClient(ctx context.Context, credentialsPath, spreadsheetID, worksheet string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент Google Sheets: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

// WriteSteps записывает количество шагов в ячейку (ник, дата).
// Недостающие строка участника и столбец даты создаются автоматически.
func (c *Client) WriteSteps(ctx context.Context, nickname string, date time.Time, steps int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, col, _, err := c.cellFor(ctx, nickname, common.FormatDate(date))
	if err != nil {
		return err
	}
	if err := c.writeCell(ctx, row, col, steps); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"nickname": nickname,
		"date":     common.FormatDate(date),
		"steps":    steps,
	}).Info("Шаги записаны в таблицу")
	return nil
}

// WriteMedal дописывает символ медали к ячейке (ник, дата).
// Повторный пересчёт не плодит символы: прежние медали из ячейки убираются.
func (c *Client) WriteMedal(ctx context.Context, nickname string, date time.Time, symbol string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, col, current, err := c.cellFor(ctx, nickname, common.FormatDate(date))
	if err != nil {
		return err
	}
	if err := c.writeCell(ctx, row, col, medals.AppendMedalSymbol(current, symbol)); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"nickname": nickname,
		"date":     common.FormatDate(date),
		"medal":    symbol,
	}).Info("Медаль записана в таблицу")
	return nil
}

// cellFor находит ячейку (ник, дата) на листе, при необходимости создавая
// заголовочную строку, столбец даты и строку участника. Возвращает номер
// строки и столбца (от единицы) и текущий текст ячейки.
func (c *Client) cellFor(ctx context.Context, nickname, dateHeader string) (row, col int, current string, err error) {
	values, err := c.readAll(ctx)
	if err != nil {
		return 0, 0, "", err
	}

	// Совсем пустой лист — создаём заголовочную строку
	if len(values) == 0 {
		if err := c.writeCell(ctx, 1, 1, headerNick); err != nil {
			return 0, 0, "", err
		}
		values = [][]interface{}{{headerNick}}
	}

	col = findColumn(values[0], dateHeader)
	if col == 0 {
		col = len(values[0]) + 1
		if err := c.writeCell(ctx, 1, col, dateHeader); err != nil {
			return 0, 0, "", err
		}
		log.WithFields(log.Fields{"date": dateHeader, "col": col}).Info("Создан столбец даты в таблице")
	}

	row = findRow(values, nickname)
	if row == 0 {
		row = len(values) + 1
		if err := c.writeCell(ctx, row, 1, nickname); err != nil {
			return 0, 0, "", err
		}
		log.WithFields(log.Fields{"nickname": nickname, "row": row}).Info("Создана строка участника в таблице")
	}

	return row, col, cellText(values, row, col), nil
}

// readAll возвращает весь заполненный диапазон листа.
func (c *Client) readAll(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать лист %q: %w", c.worksheet, err)
	}
	return resp.Values, nil
}

// writeCell записывает одно значение в ячейку (row, col), нумерация от единицы.
func (c *Client) writeCell(ctx context.Context, row, col int, value interface{}) error {
	rng := fmt.Sprintf("%s!%s%d", c.worksheet, columnLetter(col), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("не удалось записать в ячейку %s: %w", rng, err)
	}
	return nil
}

// findColumn возвращает номер столбца (от единицы) с заголовком header, либо 0.
func findColumn(headers []interface{}, header string) int {
	for i, h := range headers {
		if cellString(h) == header {
			return i + 1
		}
	}
	return 0
}

// findRow возвращает номер строки (от единицы) участника nickname, либо 0.
// Заголовочная строка пропускается, регистр ника не учитывается.
func findRow(values [][]interface{}, nickname string) int {
	for i, row := range values {
		if i == 0 {
			continue
		}
		if len(row) > 0 && strings.EqualFold(cellString(row[0]), nickname) {
			return i + 1
		}
	}
	return 0
}

// cellText возвращает текст ячейки (row, col) из прочитанного диапазона.
// Для ячеек за пределами заполненной части листа возвращает пустую строку.
func cellText(values [][]interface{}, row, col int) string {
	if row < 1 || row > len(values) {
		return ""
	}
	r := values[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return cellString(r[col-1])
}

// cellString приводит значение ячейки к строке.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// columnLetter переводит номер столбца (от единицы) в буквенное имя
// A1-нотации: 1 → A, 26 → Z, 27 → AA.
func columnLetter(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
