package dto

import "github.com/guttosm/stockdata/internal/domain/models"

// Fallbacks applied when the provider profile omits a fact.
const (
	DefaultName     = "UNKNOWN"
	DefaultCurrency = "USD"
	DefaultNumeric  = "0"
)

// StockDataResponse represents the JSON document returned by GET /stock_data.
//
// Keys are part of the public contract and are consumed verbatim by clients.
// Scalar profile fields are numbers when known and fallback strings otherwise.
type StockDataResponse struct {
	Symbol                             string                        `json:"Symbol" example:"AAPL"`
	Name                               Scalar                        `json:"Name" swaggertype:"string" example:"Apple Inc."`
	Currency                           Scalar                        `json:"Currency" swaggertype:"string" example:"USD"`
	MarketCapitalization               Scalar                        `json:"MarketCapitalization" swaggertype:"number" example:"3400000000000"`
	TrailingPE                         Scalar                        `json:"TrailingPE" swaggertype:"number" example:"33.4"`
	ForwardPE                          Scalar                        `json:"ForwardPE" swaggertype:"number" example:"29.1"`
	DividendPerShareYearly             Scalar                        `json:"DividendPerShareYearly" swaggertype:"number" example:"1"`
	HistoricalData                     map[string]map[string]float64 `json:"HistoricalData"`
	DividendHistory                    map[string]float64            `json:"DividendHistory"`
	TargetMeanPrice                    Scalar                        `json:"TargetMeanPrice" swaggertype:"number" example:"245.5"`
	NumberOfAnalystOpinions            Scalar                        `json:"NumberOfAnalystOpinions" swaggertype:"number" example:"40"`
	InvestorRelationsWebsite           Scalar                        `json:"InvestorRelationsWebsite" swaggertype:"string" example:"http://investor.apple.com/"`
	RecommendationMean                 Scalar                        `json:"RecommendationMean" swaggertype:"number" example:"2.1"`
	ComputedRecommendationMean         *float64                      `json:"ComputedRecommendationMean" example:"2.05"`
	SharesOutstanding                  Scalar                        `json:"SharesOutstanding" swaggertype:"number" example:"15000000000"`
	RecentFourQuartersIncomeStatements map[string]map[string]float64 `json:"RecentFourQuartersIncomeStatements,omitempty"`
}

// NewStockDataResponse maps the aggregate onto the public document,
// applying the documented fallback for every missing profile fact.
func NewStockDataResponse(d *models.StockData) StockDataResponse {
	p := d.Profile

	historical := d.HistoricalData
	if historical == nil {
		historical = map[string]map[string]float64{}
	}
	dividends := d.DividendHistory
	if dividends == nil {
		dividends = map[string]float64{}
	}

	return StockDataResponse{
		Symbol:                             d.Symbol,
		Name:                               TextOr(p.LongName, DefaultName),
		Currency:                           TextOr(p.Currency, DefaultCurrency),
		MarketCapitalization:               NumberOr(p.MarketCap, DefaultNumeric),
		TrailingPE:                         NumberOr(p.TrailingPE, DefaultNumeric),
		ForwardPE:                          NumberOr(p.ForwardPE, DefaultNumeric),
		DividendPerShareYearly:             NumberOr(p.DividendRate, DefaultNumeric),
		HistoricalData:                     historical,
		DividendHistory:                    dividends,
		TargetMeanPrice:                    NumberOr(p.TargetMeanPrice, DefaultNumeric),
		NumberOfAnalystOpinions:            NumberOr(p.NumberOfAnalystOpinions, DefaultNumeric),
		InvestorRelationsWebsite:           TextOr(p.IRWebsite, DefaultNumeric),
		RecommendationMean:                 NumberOr(p.RecommendationMean, DefaultNumeric),
		ComputedRecommendationMean:         d.ComputedRecommendationMean,
		SharesOutstanding:                  NumberOr(p.SharesOutstanding, DefaultNumeric),
		RecentFourQuartersIncomeStatements: d.IncomeStatements,
	}
}
