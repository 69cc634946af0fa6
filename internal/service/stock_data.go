package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/logger"
	"github.com/guttosm/stockdata/internal/provider"
)

var (
	// ErrMissingTicker is returned before any provider call when the ticker is blank.
	ErrMissingTicker = errors.New("ticker symbol not provided")
	// ErrNoData covers a missing or invalid date range, an empty historical
	// series and any upstream failure.
	ErrNoData = errors.New("no data available for the specified parameters")
)

// Query holds the raw /stock_data parameters. Dates are YYYY-MM-DD strings and may be empty.
type Query struct {
	Ticker    string
	StartDate string
	EndDate   string
}

// StockDataService defines the aggregation behind /stock_data.
type StockDataService interface {
	GetStockData(ctx context.Context, q Query) (*models.StockData, error)
}

// Option configures the service.
type Option func(*stockDataService)

// WithParallelFetch controls whether the fetches after the historical gate run concurrently.
func WithParallelFetch(on bool) Option {
	return func(s *stockDataService) { s.parallel = on }
}

// WithIncomeStatements controls whether quarterly income statements are fetched and returned.
func WithIncomeStatements(on bool) Option {
	return func(s *stockDataService) { s.includeIncome = on }
}

type stockDataService struct {
	provider      provider.Provider
	parallel      bool
	includeIncome bool
}

func NewStockDataService(p provider.Provider, opts ...Option) StockDataService {
	s := &stockDataService{provider: p, parallel: true, includeIncome: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// details is everything fetched once the historical gate has passed.
type details struct {
	profile *models.Profile
	divs    []models.Dividend
	recs    []models.RecommendationPeriod
	income  []models.IncomeStatement
}

func (s *stockDataService) GetStockData(ctx context.Context, q Query) (*models.StockData, error) {
	symbol := strings.TrimSpace(q.Ticker)
	if symbol == "" {
		return nil, ErrMissingTicker
	}
	log := logger.FromContext(ctx).With().Str("ticker", symbol).Logger()

	start, end, ok := parseRange(q.StartDate, q.EndDate)
	if !ok {
		log.Debug().Str("start_date", q.StartDate).Str("end_date", q.EndDate).Msg("date range missing or invalid")
		return nil, ErrNoData
	}

	ticker := strings.ToUpper(symbol)
	series, err := s.provider.FetchHistoricalBars(ctx, ticker, start, end)
	if err != nil {
		logUpstream(ctx, ticker, err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if series.Empty() {
		log.Info().Msg("no historical data for range")
		return nil, ErrNoData
	}

	var d details
	if s.parallel {
		err = s.fetchParallel(ctx, ticker, &d)
	} else {
		err = s.fetchSequential(ctx, ticker, &d)
	}
	if err != nil {
		logUpstream(ctx, ticker, err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	return Assemble(symbol, series, d.profile, d.divs, d.recs, d.income, s.includeIncome), nil
}

func (s *stockDataService) fetchSequential(ctx context.Context, ticker string, d *details) error {
	var err error
	if d.profile, err = s.provider.FetchProfile(ctx, ticker); err != nil {
		return err
	}
	if d.divs, err = s.provider.FetchDividends(ctx, ticker); err != nil {
		return err
	}
	if d.recs, err = s.provider.FetchRecommendationSummary(ctx, ticker); err != nil {
		return err
	}
	if s.includeIncome {
		if d.income, err = s.provider.FetchQuarterlyIncomeStatements(ctx, ticker); err != nil {
			return err
		}
	}
	return nil
}

func (s *stockDataService) fetchParallel(ctx context.Context, ticker string, d *details) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.profile, err = s.provider.FetchProfile(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		d.divs, err = s.provider.FetchDividends(gctx, ticker)
		return err
	})
	g.Go(func() (err error) {
		d.recs, err = s.provider.FetchRecommendationSummary(gctx, ticker)
		return err
	})
	if s.includeIncome {
		g.Go(func() (err error) {
			d.income, err = s.provider.FetchQuarterlyIncomeStatements(gctx, ticker)
			return err
		})
	}

	return g.Wait()
}

// Assemble builds the aggregate from already fetched parts. It performs no I/O.
func Assemble(symbol string, series *models.HistoricalSeries, profile *models.Profile, divs []models.Dividend,
	recs []models.RecommendationPeriod, income []models.IncomeStatement, includeIncome bool) *models.StockData {
	out := &models.StockData{
		Symbol:                     symbol,
		DividendHistory:            NormalizeDividends(divs),
		ComputedRecommendationMean: RecommendationMean(recs),
	}
	if series != nil {
		out.HistoricalData = NormalizeHistorical(series.Bars)
	} else {
		out.HistoricalData = map[string]map[string]float64{}
	}
	if profile != nil {
		out.Profile = *profile
	}
	if includeIncome {
		out.IncomeStatements = NormalizeIncome(income)
	}
	return out
}

// parseRange parses both dates. It reports false when either is blank or malformed.
func parseRange(startRaw, endRaw string) (time.Time, time.Time, bool) {
	startRaw, endRaw = strings.TrimSpace(startRaw), strings.TrimSpace(endRaw)
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(models.DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(models.DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func logUpstream(ctx context.Context, ticker string, err error) {
	ev := logger.FromContext(ctx).Warn().Err(err).Str("ticker", ticker)
	if ue, ok := provider.IsUpstream(err); ok {
		ev = ev.Str("stage", string(ue.Stage))
		if ue.StatusCode != 0 {
			ev = ev.Int("status", ue.StatusCode)
		}
	}
	ev.Msg("upstream failure, answering no data")
}
