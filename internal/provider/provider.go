// Package provider defines the contract between the aggregation service and
// the upstream market data source.
package provider

import (
	"context"
	"time"

	"github.com/guttosm/stockdata/internal/domain/models"
)

// Provider fetches the independent datasets that make up a /stock_data document.
//
// Every method performs network I/O and honours ctx cancellation.
// "Nothing reported" is expressed as an empty result, never as an error;
// errors are reserved for transport and provider failures (*UpstreamError).
type Provider interface {
	// FetchHistoricalBars returns daily bars in [start, end).
	FetchHistoricalBars(ctx context.Context, ticker string, start, end time.Time) (*models.HistoricalSeries, error)
	FetchProfile(ctx context.Context, ticker string) (*models.Profile, error)
	FetchDividends(ctx context.Context, ticker string) ([]models.Dividend, error)
	FetchRecommendationSummary(ctx context.Context, ticker string) ([]models.RecommendationPeriod, error)
	FetchQuarterlyIncomeStatements(ctx context.Context, ticker string) ([]models.IncomeStatement, error)
	// Ping checks that the provider is reachable.
	Ping(ctx context.Context) error
}
