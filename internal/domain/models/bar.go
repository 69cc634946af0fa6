package models

import "time"

// DateLayout is the ISO calendar date format used for every date key in the API.
const DateLayout = "2006-01-02"

// Bar is one daily price bar as reported by the market data provider.
//
// Prices are pointers because the provider may omit individual values for a
// session. AdjClose is only set when the provider reported an adjusted close
// and the series was not already auto-adjusted.
type Bar struct {
	Date     time.Time // session date in the exchange timezone, truncated to midnight
	Open     *float64
	High     *float64
	Low      *float64
	Close    *float64
	AdjClose *float64
	Volume   int64
}

// HistoricalSeries is the ordered (ascending by date) bar series for one ticker.
type HistoricalSeries struct {
	Ticker   string
	Currency string
	Bars     []Bar
}

// Empty reports whether the series carries no bars.
func (s *HistoricalSeries) Empty() bool {
	return s == nil || len(s.Bars) == 0
}

// Dividend is a single cash distribution.
type Dividend struct {
	Date   time.Time
	Amount float64
}
