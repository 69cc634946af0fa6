package models

// StockData is the aggregate built for one /stock_data request.
//
// Historical and dividend maps are already normalised to ISO date keys.
// ComputedRecommendationMean is nil when the recent window holds no ratings.
type StockData struct {
	Symbol                     string
	Profile                    Profile
	HistoricalData             map[string]map[string]float64
	DividendHistory            map[string]float64
	IncomeStatements           map[string]map[string]float64
	ComputedRecommendationMean *float64
}
