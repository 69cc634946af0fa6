package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/logger"
	"github.com/guttosm/stockdata/internal/provider"
)

var profileModules = []string{"price", "summaryDetail", "financialData", "defaultKeyStatistics", "assetProfile"}

// incomeLineItems maps quoteSummary statement fields to the line item names
// clients expect (e.g. "Total Revenue", "Net Income").
var incomeLineItems = map[string]string{
	"totalRevenue":                      "Total Revenue",
	"costOfRevenue":                     "Cost Of Revenue",
	"grossProfit":                       "Gross Profit",
	"researchDevelopment":               "Research Development",
	"sellingGeneralAdministrative":      "Selling General Administrative",
	"totalOperatingExpenses":            "Total Operating Expenses",
	"operatingIncome":                   "Operating Income",
	"ebit":                              "Ebit",
	"interestExpense":                   "Interest Expense",
	"incomeBeforeTax":                   "Income Before Tax",
	"incomeTaxExpense":                  "Income Tax Expense",
	"netIncome":                         "Net Income",
	"netIncomeApplicableToCommonShares": "Net Income Common Stockholders",
}

// FetchProfile returns the issuer facts. Facts the provider does not report are left nil.
func (c *Client) FetchProfile(ctx context.Context, ticker string) (*models.Profile, error) {
	r, err := c.quoteSummary(ctx, ticker, profileModules, provider.StageProfile)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		LongName:                firstText(r, "price.longName", "price.shortName"),
		Currency:                firstText(r, "price.currency", "summaryDetail.currency", "financialData.financialCurrency"),
		MarketCap:               firstNumber(r, "price.marketCap", "summaryDetail.marketCap"),
		TrailingPE:              firstNumber(r, "summaryDetail.trailingPE"),
		ForwardPE:               firstNumber(r, "summaryDetail.forwardPE", "defaultKeyStatistics.forwardPE"),
		DividendRate:            firstNumber(r, "summaryDetail.dividendRate"),
		TargetMeanPrice:         firstNumber(r, "financialData.targetMeanPrice"),
		NumberOfAnalystOpinions: firstNumber(r, "financialData.numberOfAnalystOpinions"),
		IRWebsite:               firstText(r, "assetProfile.irWebsite"),
		RecommendationMean:      firstNumber(r, "financialData.recommendationMean"),
		SharesOutstanding:       firstNumber(r, "defaultKeyStatistics.sharesOutstanding", "price.sharesOutstanding"),
	}, nil
}

// FetchRecommendationSummary returns the recommendation trend rows as reported,
// one per period bucket ("0m", "-1m", ...).
func (c *Client) FetchRecommendationSummary(ctx context.Context, ticker string) ([]models.RecommendationPeriod, error) {
	r, err := c.quoteSummary(ctx, ticker, []string{"recommendationTrend"}, provider.StageRecommendations)
	if err != nil {
		return nil, err
	}

	rows := []models.RecommendationPeriod{}
	for _, t := range r.Get("recommendationTrend.trend").Array() {
		rows = append(rows, models.RecommendationPeriod{
			Period:     t.Get("period").String(),
			StrongBuy:  int(t.Get("strongBuy").Int()),
			Buy:        int(t.Get("buy").Int()),
			Hold:       int(t.Get("hold").Int()),
			Sell:       int(t.Get("sell").Int()),
			StrongSell: int(t.Get("strongSell").Int()),
		})
	}
	return rows, nil
}

// FetchQuarterlyIncomeStatements returns the reported quarterly statements, oldest first.
func (c *Client) FetchQuarterlyIncomeStatements(ctx context.Context, ticker string) ([]models.IncomeStatement, error) {
	r, err := c.quoteSummary(ctx, ticker, []string{"incomeStatementHistoryQuarterly"}, provider.StageIncome)
	if err != nil {
		return nil, err
	}

	out := []models.IncomeStatement{}
	for _, s := range r.Get("incomeStatementHistoryQuarterly.incomeStatementHistory").Array() {
		end := number(s.Get("endDate"))
		if end == nil {
			continue
		}
		items := make(map[string]float64, len(incomeLineItems))
		for field, name := range incomeLineItems {
			if v := number(s.Get(field)); v != nil {
				items[name] = *v
			}
		}
		out = append(out, models.IncomeStatement{
			PeriodEnd: sessionDate(int64(*end), time.UTC),
			Items:     items,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodEnd.Before(out[j].PeriodEnd) })
	return out, nil
}

// Ping reports whether the chart host answers at all. Any HTTP reply below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, c.chartURL, "/", nil)
	var se *statusError
	if errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}

// quoteSummary fetches the given modules and returns quoteSummary.result[0].
// A rejected crumb is refreshed once; this is session renewal, not a retry policy.
// "Not Found" yields a non-existent result.
func (c *Client) quoteSummary(ctx context.Context, ticker string, modules []string, stage provider.Stage) (gjson.Result, error) {
	for attempt := 0; ; attempt++ {
		crumb, err := c.sessionCrumb(ctx)
		if err != nil {
			var ue *provider.UpstreamError
			if errors.As(err, &ue) {
				ue.Ticker = ticker
			}
			return gjson.Result{}, err
		}

		q := url.Values{}
		q.Set("modules", strings.Join(modules, ","))
		q.Set("formatted", "false")
		q.Set("crumb", crumb)

		body, err := c.get(ctx, c.summaryURL, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), q)
		if err == nil {
			if !gjson.ValidBytes(body) {
				return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, Err: errors.New("invalid json in quoteSummary response")}
			}
			return gjson.GetBytes(body, "quoteSummary.result.0"), nil
		}

		var se *statusError
		if !errors.As(err, &se) {
			return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, Err: err}
		}
		switch {
		case se.StatusCode == http.StatusUnauthorized && attempt == 0:
			logger.FromContext(ctx).Debug().Str("ticker", ticker).Msg("crumb rejected, renewing session")
			c.resetCrumb(crumb)
			continue
		case se.StatusCode == http.StatusNotFound || isNotFound(gjson.GetBytes(body, "quoteSummary.error")):
			return gjson.Result{}, nil
		default:
			return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, StatusCode: se.StatusCode, Err: fmt.Errorf("quoteSummary: %w", err)}
		}
	}
}
