package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/provider"
)

// FetchHistoricalBars returns the daily bars whose session date falls in [start, end).
//
// The request window is widened by one day on each side so exchanges far from
// UTC do not lose their first or last session; the exact range is applied on
// session dates after the timestamps are moved into the exchange timezone.
func (c *Client) FetchHistoricalBars(ctx context.Context, ticker string, start, end time.Time) (*models.HistoricalSeries, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.AddDate(0, 0, -1).Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")

	result, err := c.chart(ctx, ticker, q, provider.StageHistorical)
	if err != nil {
		return nil, err
	}

	series := &models.HistoricalSeries{Ticker: ticker}
	if !result.Exists() {
		return series, nil
	}
	series.Currency = result.Get("meta.currency").String()
	series.Bars = c.parseBars(result, dateOnly(start), dateOnly(end))
	return series, nil
}

// FetchDividends returns the full dividend history, oldest first.
func (c *Client) FetchDividends(ctx context.Context, ticker string) ([]models.Dividend, error) {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	q.Set("events", "div")

	result, err := c.chart(ctx, ticker, q, provider.StageDividends)
	if err != nil {
		return nil, err
	}
	if !result.Exists() {
		return []models.Dividend{}, nil
	}
	return parseDividends(result), nil
}

// chart calls /v8/finance/chart and returns chart.result[0]. A "Not Found"
// reply yields a non-existent result rather than an error.
func (c *Client) chart(ctx context.Context, ticker string, q url.Values, stage provider.Stage) (gjson.Result, error) {
	body, err := c.get(ctx, c.chartURL, "/v8/finance/chart/"+url.PathEscape(ticker), q)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if se.StatusCode == http.StatusNotFound || isNotFound(gjson.GetBytes(body, "chart.error")) {
				return gjson.Result{}, nil
			}
			return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, StatusCode: se.StatusCode, Err: err}
		}
		return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, Err: err}
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, Err: errors.New("invalid json in chart response")}
	}
	if e := gjson.GetBytes(body, "chart.error"); e.IsObject() {
		if isNotFound(e) {
			return gjson.Result{}, nil
		}
		return gjson.Result{}, &provider.UpstreamError{Stage: stage, Ticker: ticker, Err: fmt.Errorf("chart error: %s", e.Get("description").String())}
	}
	return gjson.GetBytes(body, "chart.result.0"), nil
}

func isNotFound(e gjson.Result) bool {
	return strings.EqualFold(e.Get("code").String(), "Not Found")
}

func (c *Client) parseBars(result gjson.Result, from, to time.Time) []models.Bar {
	loc := exchangeLocation(result.Get("meta"))
	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()
	adjCloses := result.Get("indicators.adjclose.0.adjclose").Array()

	at := func(arr []gjson.Result, i int) *float64 {
		if i >= len(arr) {
			return nil
		}
		return number(arr[i])
	}

	bars := make([]models.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		date := sessionDate(ts.Int(), loc)
		if date.Before(from) || !date.Before(to) {
			continue
		}

		b := models.Bar{
			Date:  date,
			Open:  at(opens, i),
			High:  at(highs, i),
			Low:   at(lows, i),
			Close: at(closes, i),
		}
		if b.Open == nil && b.High == nil && b.Low == nil && b.Close == nil {
			continue
		}
		if v := at(volumes, i); v != nil {
			b.Volume = int64(*v)
		}

		if adj := at(adjCloses, i); adj != nil {
			if c.autoAdjust {
				adjust(&b, *adj)
			} else {
				b.AdjClose = adj
			}
		}

		// Yahoo repeats the live session as a trailing row with the same date
		if n := len(bars); n > 0 && bars[n-1].Date.Equal(b.Date) {
			bars[n-1] = b
			continue
		}
		bars = append(bars, b)
	}
	return bars
}

// adjust scales OHLC by adjClose/close, the same ratio used for split and
// dividend back-adjustment.
func adjust(b *models.Bar, adjClose float64) {
	if b.Close == nil || *b.Close == 0 {
		return
	}
	ratio := adjClose / *b.Close
	for _, p := range []*float64{b.Open, b.High, b.Low} {
		if p != nil {
			*p *= ratio
		}
	}
	v := adjClose
	b.Close = &v
}

func parseDividends(result gjson.Result) []models.Dividend {
	loc := exchangeLocation(result.Get("meta"))
	out := []models.Dividend{}
	result.Get("events.dividends").ForEach(func(key, value gjson.Result) bool {
		amount := number(value.Get("amount"))
		if amount == nil {
			return true
		}
		ts := value.Get("date").Int()
		if ts == 0 {
			ts, _ = strconv.ParseInt(key.String(), 10, 64)
		}
		out = append(out, models.Dividend{Date: sessionDate(ts, loc), Amount: *amount})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
