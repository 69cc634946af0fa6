package models

// Provider labels of the two most recent recommendation buckets.
const (
	PeriodCurrentMonth = "0m"
	PeriodPriorMonth   = "-1m"
)

// RecommendationPeriod is one row of the analyst recommendation summary:
// rating counts for a reporting bucket such as "0m" (this month) or "-1m".
type RecommendationPeriod struct {
	Period     string
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
}

// Total returns the number of ratings in the bucket.
func (p RecommendationPeriod) Total() int {
	return p.StrongBuy + p.Buy + p.Hold + p.Sell + p.StrongSell
}
