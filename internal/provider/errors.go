package provider

import (
	"errors"
	"fmt"
)

// Stage names the provider call that failed.
type Stage string

const (
	StageHistorical      Stage = "historical"
	StageProfile         Stage = "profile"
	StageDividends       Stage = "dividends"
	StageRecommendations Stage = "recommendations"
	StageIncome          Stage = "income_statements"
	StageSession         Stage = "session"
)

// UpstreamError reports a failed call to the market data provider.
type UpstreamError struct {
	Stage      Stage
	Ticker     string
	StatusCode int // 0 when the request never got an HTTP response
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream %s for %q", e.Stage, e.Ticker)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsUpstream reports whether err is (or wraps) an *UpstreamError and returns it.
func IsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
