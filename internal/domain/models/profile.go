package models

// Profile holds issuer facts from the provider's summary lookup.
//
// A nil field means the provider did not report the fact; defaults are applied
// when the response document is assembled, never here.
type Profile struct {
	LongName                *string
	Currency                *string
	MarketCap               *float64
	TrailingPE              *float64
	ForwardPE               *float64
	DividendRate            *float64
	TargetMeanPrice         *float64
	NumberOfAnalystOpinions *float64
	IRWebsite               *string
	RecommendationMean      *float64
	SharesOutstanding       *float64
}
