// Package medals — ranking.go реализует плотное ранжирование итогов дня.
// Чистая функция без ввода-вывода: её можно вызывать параллельно
// без какой-либо синхронизации.
package medals

import (
	"sort"

	"easygo.ru/steps-bot/internal/features/report"
)

// AssignMedals ранжирует записи одного дня и выдаёт медали за три лучших
// различных результата. Ранжирование плотное: все записи с одинаковым
// количеством шагов делят одно место и получают одну и ту же медаль,
// а следующее различное значение занимает следующее место, без пропусков.
//
// Пустой вход — пустой выход. Меньше трёх различных результатов — меньше
// трёх медалей.
func AssignMedals(records []report.StepRecord) []RankedReport {
	if len(records) == 0 {
		return nil
	}

	sorted := make([]report.StepRecord, len(records))
	copy(sorted, records)
	// Порядок детерминирован: шаги по убыванию, при равенстве — ник
	// по возрастанию. На медали вторичный ключ не влияет, только на
	// воспроизводимость списка.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Steps != sorted[j].Steps {
			return sorted[i].Steps > sorted[j].Steps
		}
		return sorted[i].Nickname < sorted[j].Nickname
	})

	medalByRank := []Medal{Gold, Silver, Bronze}

	var out []RankedReport
	rank := 0
	prevSteps := -1 // шаги неотрицательны, -1 = «предыдущего значения не было»
	for _, rec := range sorted {
		if rec.Steps != prevSteps {
			rank++
			prevSteps = rec.Steps
		}
		if rank > 3 {
			break
		}
		out = append(out, RankedReport{Record: rec, Medal: medalByRank[rank-1]})
	}
	return out
}
