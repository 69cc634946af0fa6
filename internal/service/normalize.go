package service

import (
	"sort"

	"github.com/guttosm/stockdata/internal/domain/models"
)

// Field names emitted for each historical row.
const (
	FieldOpen     = "Open"
	FieldHigh     = "High"
	FieldLow      = "Low"
	FieldClose    = "Close"
	FieldAdjClose = "Adj Close"
)

// NormalizeHistorical re-keys bars by ISO date. Volume is never emitted, and
// prices the provider left out are omitted from the row.
func NormalizeHistorical(bars []models.Bar) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(bars))
	for _, b := range bars {
		row := make(map[string]float64, 5)
		put := func(name string, v *float64) {
			if v != nil {
				row[name] = *v
			}
		}
		put(FieldOpen, b.Open)
		put(FieldHigh, b.High)
		put(FieldLow, b.Low)
		put(FieldClose, b.Close)
		put(FieldAdjClose, b.AdjClose)

		if len(row) == 0 {
			continue
		}
		out[b.Date.Format(models.DateLayout)] = row
	}
	return out
}

// NormalizeDividends re-keys dividends by ISO date. A later entry on the same
// date replaces the earlier one.
func NormalizeDividends(divs []models.Dividend) map[string]float64 {
	out := make(map[string]float64, len(divs))
	for _, d := range divs {
		out[d.Date.Format(models.DateLayout)] = d.Amount
	}
	return out
}

// RecentQuarters is the number of quarterly statements kept, most recent first.
const RecentQuarters = 4

// NormalizeIncome re-keys the RecentQuarters latest quarterly statements by ISO period-end date.
func NormalizeIncome(stmts []models.IncomeStatement) map[string]map[string]float64 {
	sorted := make([]models.IncomeStatement, len(stmts))
	copy(sorted, stmts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PeriodEnd.Before(sorted[j].PeriodEnd) })
	if len(sorted) > RecentQuarters {
		sorted = sorted[len(sorted)-RecentQuarters:]
	}

	out := make(map[string]map[string]float64, len(sorted))
	for _, s := range sorted {
		items := make(map[string]float64, len(s.Items))
		for k, v := range s.Items {
			items[k] = v
		}
		out[s.PeriodEnd.Format(models.DateLayout)] = items
	}
	return out
}
