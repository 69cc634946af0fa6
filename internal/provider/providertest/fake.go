// Package providertest offers an in-memory provider.Provider for tests.
package providertest

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/provider"
)

// Fake returns canned data and records every call. The zero value answers
// with empty results and no errors.
type Fake struct {
	Series          *models.HistoricalSeries
	Profile         *models.Profile
	Dividends       []models.Dividend
	Recommendations []models.RecommendationPeriod
	Income          []models.IncomeStatement

	HistoricalErr      error
	ProfileErr         error
	DividendsErr       error
	RecommendationsErr error
	IncomeErr          error
	PingErr            error

	mu    sync.Mutex
	calls map[string]int
	// LastStart and LastEnd hold the range of the most recent historical fetch.
	LastStart, LastEnd time.Time
	// LastTicker is the ticker of the most recent historical fetch.
	LastTicker string
}

var _ provider.Provider = (*Fake)(nil)

func (f *Fake) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// TotalCalls returns the number of data fetches made, Ping excluded.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for name, c := range f.calls {
		if name != "Ping" {
			n += c
		}
	}
	return n
}

func (f *Fake) FetchHistoricalBars(_ context.Context, ticker string, start, end time.Time) (*models.HistoricalSeries, error) {
	f.record("FetchHistoricalBars")
	f.mu.Lock()
	f.LastTicker, f.LastStart, f.LastEnd = ticker, start, end
	f.mu.Unlock()
	if f.HistoricalErr != nil {
		return nil, f.HistoricalErr
	}
	if f.Series == nil {
		return &models.HistoricalSeries{Ticker: ticker}, nil
	}
	return f.Series, nil
}

func (f *Fake) FetchProfile(_ context.Context, _ string) (*models.Profile, error) {
	f.record("FetchProfile")
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if f.Profile == nil {
		return &models.Profile{}, nil
	}
	return f.Profile, nil
}

func (f *Fake) FetchDividends(_ context.Context, _ string) ([]models.Dividend, error) {
	f.record("FetchDividends")
	return f.Dividends, f.DividendsErr
}

func (f *Fake) FetchRecommendationSummary(_ context.Context, _ string) ([]models.RecommendationPeriod, error) {
	f.record("FetchRecommendationSummary")
	return f.Recommendations, f.RecommendationsErr
}

func (f *Fake) FetchQuarterlyIncomeStatements(_ context.Context, _ string) ([]models.IncomeStatement, error) {
	f.record("FetchQuarterlyIncomeStatements")
	return f.Income, f.IncomeErr
}

func (f *Fake) Ping(_ context.Context) error {
	f.record("Ping")
	return f.PingErr
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Day parses a YYYY-MM-DD date and panics on malformed input.
func Day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Sample returns a Fake loaded with two sessions, one dividend, a profile,
// a recommendation trend and one income statement.
func Sample() *Fake {
	return &Fake{
		Series: &models.HistoricalSeries{
			Ticker:   "AAPL",
			Currency: "USD",
			Bars: []models.Bar{
				{Date: Day("2024-01-02"), Open: Float(187.15), High: Float(188.44), Low: Float(183.89), Close: Float(185.64), Volume: 82488700},
				{Date: Day("2024-01-03"), Open: Float(184.22), High: Float(185.88), Low: Float(183.43), Close: Float(184.25), Volume: 58414500},
			},
		},
		Profile: &models.Profile{
			LongName:                String("Apple Inc."),
			Currency:                String("USD"),
			MarketCap:               Float(2.87e12),
			TrailingPE:              Float(29.8),
			ForwardPE:               Float(28.1),
			DividendRate:            Float(0.96),
			TargetMeanPrice:         Float(200.5),
			NumberOfAnalystOpinions: Float(39),
			IRWebsite:               String("http://investor.apple.com/"),
			RecommendationMean:      Float(2.1),
			SharesOutstanding:       Float(1.55e10),
		},
		Dividends: []models.Dividend{
			{Date: Day("2023-11-10"), Amount: 0.24},
		},
		Recommendations: []models.RecommendationPeriod{
			{Period: models.PeriodCurrentMonth, StrongBuy: 10},
			{Period: models.PeriodPriorMonth, StrongBuy: 10},
			{Period: "-2m", StrongSell: 50},
		},
		Income: []models.IncomeStatement{
			{PeriodEnd: Day("2023-12-31"), Items: map[string]float64{"Total Revenue": 1.19575e11, "Net Income": 3.3916e10}},
		},
	}
}
