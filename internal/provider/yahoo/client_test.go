package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockdata/internal/provider"
)

const chartFixture = `{"chart":{"result":[{
  "meta":{"currency":"USD","symbol":"AAPL","exchangeTimezoneName":"America/New_York","timezone":"EST","gmtoffset":-18000},
  "timestamp":[1703860200,1704205800,1704292200,1704378600,1704398400],
  "events":{"dividends":{
    "1707489000":{"amount":0.24,"date":1707489000},
    "1699540200":{"amount":0.24,"date":1699540200}
  }},
  "indicators":{
    "quote":[{
      "open":[90,98,null,101,102],
      "high":[91,102,null,103,104],
      "low":[89,97,null,100,101],
      "close":[90,100,null,102,103],
      "volume":[1000,2000,null,3000,3500]
    }],
    "adjclose":[{"adjclose":[45,50,null,51,51.5]}]
  }
}],"error":null}}`

const notFoundChart = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

const profileFixture = `{"quoteSummary":{"result":[{
  "price":{"longName":"Apple Inc.","shortName":"Apple","currency":"USD","marketCap":3000000000000},
  "summaryDetail":{"trailingPE":30.5,"forwardPE":{},"dividendRate":{"raw":0.96,"fmt":"0.96"}},
  "financialData":{"targetMeanPrice":210.5,"numberOfAnalystOpinions":40,"recommendationMean":2.1},
  "defaultKeyStatistics":{"forwardPE":28.1,"sharesOutstanding":15500000000},
  "assetProfile":{"irWebsite":"http://investor.apple.com/"}
}],"error":null}}`

const recommendationFixture = `{"quoteSummary":{"result":[{"recommendationTrend":{"trend":[
  {"period":"0m","strongBuy":10,"buy":20,"hold":5,"sell":1,"strongSell":0},
  {"period":"-1m","strongBuy":9,"buy":21,"hold":6,"sell":0,"strongSell":1},
  {"period":"-2m","strongBuy":8,"buy":20,"hold":7,"sell":1,"strongSell":1}
]}}],"error":null}}`

const incomeFixture = `{"quoteSummary":{"result":[{"incomeStatementHistoryQuarterly":{"incomeStatementHistory":[
  {"endDate":1711843200,"totalRevenue":90753000000,"netIncome":23636000000,"ebit":{}},
  {"endDate":1703980800,"totalRevenue":119575000000,"netIncome":33916000000},
  {"totalRevenue":1}
]}}],"error":null}}`

type fakeYahoo struct {
	chart   http.HandlerFunc
	summary http.HandlerFunc
	crumbs  []string

	crumbCalls  atomic.Int32
	cookieCalls atomic.Int32
}

func (f *fakeYahoo) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		f.cookieCalls.Add(1)
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		n := int(f.crumbCalls.Add(1)) - 1
		crumb := "abc"
		if n < len(f.crumbs) {
			crumb = f.crumbs[n]
		}
		_, _ = w.Write([]byte(crumb))
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		f.chart(w, r)
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		f.summary(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, f *fakeYahoo, opts ...ClientOption) *Client {
	t.Helper()
	srv := f.server(t)
	return NewClient(srv.URL, srv.URL, srv.URL+"/cookie", opts...)
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFetchHistoricalBars_AutoAdjust(t *testing.T) {
	var query string
	f := &fakeYahoo{chart: func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		jsonReply(http.StatusOK, chartFixture)(w, r)
	}}
	c := newTestClient(t, f)

	series, err := c.FetchHistoricalBars(context.Background(), "AAPL", day("2024-01-02"), day("2024-01-05"))
	require.NoError(t, err)
	assert.Contains(t, query, "interval=1d")
	assert.Contains(t, query, "period1=1704067200")
	assert.Contains(t, query, "period2=1704499200")

	assert.Equal(t, "USD", series.Currency)
	require.Len(t, series.Bars, 2, "out-of-range and all-null rows dropped, trailing duplicate merged")

	first := series.Bars[0]
	assert.Equal(t, day("2024-01-02"), first.Date)
	assert.InDelta(t, 49.0, *first.Open, 1e-9)
	assert.InDelta(t, 51.0, *first.High, 1e-9)
	assert.InDelta(t, 48.5, *first.Low, 1e-9)
	assert.InDelta(t, 50.0, *first.Close, 1e-9)
	assert.Nil(t, first.AdjClose)
	assert.EqualValues(t, 2000, first.Volume)

	last := series.Bars[1]
	assert.Equal(t, day("2024-01-04"), last.Date)
	assert.InDelta(t, 51.5, *last.Close, 1e-9)
	assert.EqualValues(t, 3500, last.Volume)
}

func TestFetchHistoricalBars_Raw(t *testing.T) {
	f := &fakeYahoo{chart: jsonReply(http.StatusOK, chartFixture)}
	c := newTestClient(t, f, WithAutoAdjust(false))

	series, err := c.FetchHistoricalBars(context.Background(), "AAPL", day("2024-01-02"), day("2024-01-03"))
	require.NoError(t, err)
	require.Len(t, series.Bars, 1)

	b := series.Bars[0]
	assert.Equal(t, 98.0, *b.Open)
	assert.Equal(t, 100.0, *b.Close)
	require.NotNil(t, b.AdjClose)
	assert.Equal(t, 50.0, *b.AdjClose)
}

func TestFetchHistoricalBars_NotFound(t *testing.T) {
	cases := []struct {
		name  string
		reply http.HandlerFunc
	}{
		{"http 404", jsonReply(http.StatusNotFound, notFoundChart)},
		{"error body", jsonReply(http.StatusOK, notFoundChart)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, &fakeYahoo{chart: tc.reply})
			series, err := c.FetchHistoricalBars(context.Background(), "NOPE", day("2024-01-02"), day("2024-01-05"))
			require.NoError(t, err)
			assert.True(t, series.Empty())
		})
	}
}

func TestFetchHistoricalBars_UpstreamFailure(t *testing.T) {
	c := newTestClient(t, &fakeYahoo{chart: jsonReply(http.StatusInternalServerError, `oops`)})

	_, err := c.FetchHistoricalBars(context.Background(), "AAPL", day("2024-01-02"), day("2024-01-05"))
	require.Error(t, err)
	ue, ok := provider.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, provider.StageHistorical, ue.Stage)
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, "AAPL", ue.Ticker)
}

func TestFetchHistoricalBars_InvalidJSON(t *testing.T) {
	c := newTestClient(t, &fakeYahoo{chart: jsonReply(http.StatusOK, `{"chart":`)})

	_, err := c.FetchHistoricalBars(context.Background(), "AAPL", day("2024-01-02"), day("2024-01-05"))
	_, ok := provider.IsUpstream(err)
	assert.True(t, ok)
}

func TestFetchDividends(t *testing.T) {
	var query string
	f := &fakeYahoo{chart: func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		jsonReply(http.StatusOK, chartFixture)(w, r)
	}}
	c := newTestClient(t, f)

	divs, err := c.FetchDividends(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Contains(t, query, "range=max")
	assert.Contains(t, query, "events=div")
	require.Len(t, divs, 2)
	assert.Equal(t, day("2023-11-09"), divs[0].Date)
	assert.Equal(t, day("2024-02-09"), divs[1].Date)
	assert.Equal(t, 0.24, divs[1].Amount)
}

func TestFetchProfile(t *testing.T) {
	f := &fakeYahoo{summary: func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("crumb"))
		assert.Equal(t, "false", r.URL.Query().Get("formatted"))
		_, err := r.Cookie("A3")
		assert.NoError(t, err, "session cookie must be sent")
		jsonReply(http.StatusOK, profileFixture)(w, r)
	}}
	c := newTestClient(t, f)

	p, err := c.FetchProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", *p.LongName)
	assert.Equal(t, "USD", *p.Currency)
	assert.Equal(t, 3e12, *p.MarketCap)
	assert.Equal(t, 30.5, *p.TrailingPE)
	assert.Equal(t, 28.1, *p.ForwardPE, "empty object falls through to key statistics")
	assert.Equal(t, 0.96, *p.DividendRate)
	assert.Equal(t, 210.5, *p.TargetMeanPrice)
	assert.Equal(t, 40.0, *p.NumberOfAnalystOpinions)
	assert.Equal(t, "http://investor.apple.com/", *p.IRWebsite)
	assert.Equal(t, 2.1, *p.RecommendationMean)
	assert.Equal(t, 1.55e10, *p.SharesOutstanding)

	// crumb is cached across calls
	_, err = c.FetchProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.crumbCalls.Load())
	assert.EqualValues(t, 1, f.cookieCalls.Load())
}

func TestFetchProfile_MissingFacts(t *testing.T) {
	c := newTestClient(t, &fakeYahoo{summary: jsonReply(http.StatusOK, `{"quoteSummary":{"result":[{"price":{}}],"error":null}}`)})

	p, err := c.FetchProfile(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Nil(t, p.LongName)
	assert.Nil(t, p.Currency)
	assert.Nil(t, p.MarketCap)
	assert.Nil(t, p.IRWebsite)
}

func TestQuoteSummary_RenewsRejectedCrumb(t *testing.T) {
	var calls atomic.Int32
	f := &fakeYahoo{crumbs: []string{"stale", "fresh"}}
	f.summary = func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("crumb") != "fresh" {
			jsonReply(http.StatusUnauthorized, `{"finance":{"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`)(w, r)
			return
		}
		jsonReply(http.StatusOK, profileFixture)(w, r)
	}
	c := newTestClient(t, f)

	p, err := c.FetchProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", *p.LongName)
	assert.EqualValues(t, 2, calls.Load())
	assert.EqualValues(t, 2, f.crumbCalls.Load())
}

func TestQuoteSummary_RenewsOnlyOnce(t *testing.T) {
	var calls atomic.Int32
	f := &fakeYahoo{summary: func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonReply(http.StatusUnauthorized, `{}`)(w, r)
	}}
	c := newTestClient(t, f)

	_, err := c.FetchProfile(context.Background(), "AAPL")
	ue, ok := provider.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, provider.StageProfile, ue.Stage)
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.EqualValues(t, 2, calls.Load())
}

func TestQuoteSummary_MalformedCrumb(t *testing.T) {
	f := &fakeYahoo{crumbs: []string{"<html>blocked</html>"}, summary: jsonReply(http.StatusOK, profileFixture)}
	c := newTestClient(t, f)

	_, err := c.FetchProfile(context.Background(), "AAPL")
	ue, ok := provider.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, provider.StageSession, ue.Stage)
	assert.Equal(t, "AAPL", ue.Ticker)
}

func TestQuoteSummary_NotFound(t *testing.T) {
	body := `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for symbol: NOPE"}}}`
	c := newTestClient(t, &fakeYahoo{summary: jsonReply(http.StatusNotFound, body)})

	p, err := c.FetchProfile(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, p.LongName)

	recs, err := c.FetchRecommendationSummary(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFetchRecommendationSummary(t *testing.T) {
	c := newTestClient(t, &fakeYahoo{summary: jsonReply(http.StatusOK, recommendationFixture)})

	recs, err := c.FetchRecommendationSummary(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "0m", recs[0].Period)
	assert.Equal(t, 10, recs[0].StrongBuy)
	assert.Equal(t, 20, recs[0].Buy)
	assert.Equal(t, 1, recs[1].StrongSell)
	assert.Equal(t, 36, recs[0].Total())
}

func TestFetchQuarterlyIncomeStatements(t *testing.T) {
	c := newTestClient(t, &fakeYahoo{summary: jsonReply(http.StatusOK, incomeFixture)})

	stmts, err := c.FetchQuarterlyIncomeStatements(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, stmts, 2, "rows without endDate are skipped")
	assert.Equal(t, day("2023-12-31"), stmts[0].PeriodEnd)
	assert.Equal(t, day("2024-03-31"), stmts[1].PeriodEnd)
	assert.Equal(t, 9.0753e10, stmts[1].Items["Total Revenue"])
	assert.Equal(t, 2.3636e10, stmts[1].Items["Net Income"])
	assert.NotContains(t, stmts[1].Items, "Ebit")
}

func TestPing(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"not found still reachable", http.StatusNotFound, false},
		{"unavailable", http.StatusServiceUnavailable, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := NewClient(srv.URL, srv.URL, "").Ping(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithHTTPClient_AttachesJar(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("http://chart", "http://summary", "", WithHTTPClient(hc), WithTimeout(3*time.Second), WithUserAgent("ua"))
	assert.NotNil(t, c.httpClient.Jar)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "ua", c.userAgent)
}
