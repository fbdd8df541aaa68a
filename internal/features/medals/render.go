// Package medals — render.go форматирует итоги дня в текст сводки
// и управляет символами медалей в ячейках таблицы.
package medals

import (
	"fmt"
	"strings"
	"time"

	"easygo.ru/steps-bot/internal/common"
)

// RenderSummary форматирует сводку итогов дня для публикации в канале.
// Группы идут в порядке золото, серебро, бронза; ники внутри группы
// перечисляются через запятую с общим результатом.
//
// Пример:
//
//	Медали за 15.08.2024:
//	🥇 #alice, #bob — 12 000 шагов
//	🥈 #carol — 9 000 шагов
//	🥉 #dave — 8 000 шагов
func RenderSummary(date time.Time, ranked []RankedReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Медали за %s:", common.FormatDate(date))

	for _, medal := range []Medal{Gold, Silver, Bronze} {
		var nicks []string
		steps := 0
		for _, rr := range ranked {
			if rr.Medal != medal {
				continue
			}
			nicks = append(nicks, "#"+rr.Record.Nickname)
			steps = rr.Record.Steps
		}
		if len(nicks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s — %s",
			medal.Symbol(), strings.Join(nicks, ", "), common.FormatSteps(steps))
	}

	return b.String()
}

// AppendMedalSymbol добавляет символ медали к тексту ячейки ровно один раз.
// Уже имеющиеся символы медалей предварительно убираются, поэтому повторное
// подведение итогов за день не накапливает символы в ячейке.
func AppendMedalSymbol(existing, symbol string) string {
	cleaned := existing
	for _, s := range Symbols {
		cleaned = strings.ReplaceAll(cleaned, s, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return symbol
	}
	return cleaned + " " + symbol
}
