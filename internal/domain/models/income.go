package models

import "time"

// IncomeStatement is one quarterly income statement keyed by line item name
// (e.g. "Total Revenue", "Net Income").
type IncomeStatement struct {
	PeriodEnd time.Time
	Items     map[string]float64
}
