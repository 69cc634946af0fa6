package yahoo

import (
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// number reads a numeric field. quoteSummary may answer a plain number
// (formatted=false), a {"raw": n, "fmt": "..."} object, or an empty {}.
// Anything that is not a finite number is treated as absent.
func number(r gjson.Result) *float64 {
	if r.IsObject() {
		r = r.Get("raw")
	}
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// firstNumber returns the first present value among the given paths.
func firstNumber(root gjson.Result, paths ...string) *float64 {
	for _, p := range paths {
		if v := number(root.Get(p)); v != nil {
			return v
		}
	}
	return nil
}

// text reads a non-empty string field.
func text(r gjson.Result) *string {
	if r.Type != gjson.String || r.Str == "" {
		return nil
	}
	s := r.Str
	return &s
}

func firstText(root gjson.Result, paths ...string) *string {
	for _, p := range paths {
		if v := text(root.Get(p)); v != nil {
			return v
		}
	}
	return nil
}

// exchangeLocation resolves the exchange timezone from chart metadata,
// falling back to the fixed gmtoffset and finally UTC.
func exchangeLocation(meta gjson.Result) *time.Location {
	if name := meta.Get("exchangeTimezoneName").String(); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if off := meta.Get("gmtoffset"); off.Exists() {
		return time.FixedZone(meta.Get("timezone").String(), int(off.Int()))
	}
	return time.UTC
}

// sessionDate converts a unix timestamp to its calendar date in loc,
// expressed as midnight UTC so that formatting never shifts the day.
func sessionDate(ts int64, loc *time.Location) time.Time {
	y, m, d := time.Unix(ts, 0).In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
