package service

import "github.com/guttosm/stockdata/internal/domain/models"

// RecommendationMean computes the weighted analyst score over the two most
// recent buckets ("0m" and "-1m"), with strongBuy weighted 1 through strongSell
// weighted 5. Lower is more bullish.
//
// An empty table yields 0 (no analyst coverage at all). A table whose recent
// buckets hold no ratings yields nil.
func RecommendationMean(rows []models.RecommendationPeriod) *float64 {
	if len(rows) == 0 {
		zero := 0.0
		return &zero
	}

	total, weighted := 0, 0
	for _, r := range rows {
		if r.Period != models.PeriodCurrentMonth && r.Period != models.PeriodPriorMonth {
			continue
		}
		total += r.Total()
		weighted += r.StrongBuy + 2*r.Buy + 3*r.Hold + 4*r.Sell + 5*r.StrongSell
	}
	if total == 0 {
		return nil
	}

	mean := float64(weighted) / float64(total)
	return &mean
}
