package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar is a profile value that serializes as a JSON number when the provider
// reported it and as a fallback string (e.g. "0", "USD") when it did not.
type Scalar struct {
	num  *float64
	text string
}

// Number returns a numeric Scalar.
func Number(v float64) Scalar { return Scalar{num: &v} }

// Text returns a string Scalar.
func Text(s string) Scalar { return Scalar{text: s} }

// NumberOr returns v as a number, or def as a string when v is nil.
func NumberOr(v *float64, def string) Scalar {
	if v == nil {
		return Text(def)
	}
	return Number(*v)
}

// TextOr returns v, or def when v is nil.
func TextOr(v *string, def string) Scalar {
	if v == nil {
		return Text(def)
	}
	return Text(*v)
}

// IsNumber reports whether the Scalar holds a number.
func (s Scalar) IsNumber() bool { return s.num != nil }

// Float returns the numeric value (0 for text).
func (s Scalar) Float() float64 {
	if s.num == nil {
		return 0
	}
	return *s.num
}

// String returns the text value, or the formatted number.
func (s Scalar) String() string {
	if s.num != nil {
		return fmt.Sprint(*s.num)
	}
	return s.text
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.num != nil {
		return json.Marshal(*s.num)
	}
	return json.Marshal(s.text)
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var txt string
		if err := json.Unmarshal(b, &txt); err != nil {
			return err
		}
		*s = Text(txt)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("scalar: expected number or string, got %s", b)
	}
	*s = Number(v)
	return nil
}
