package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinimumMinorUnits is ₹50 in paise.
const MinimumMinorUnits = 5000

const (
	ScaleLegacy   = "legacy"
	ScaleStandard = "standard"
)

// PriceNormalizer converts a display price into provider minor units. ok is
// false when the amount does not fit in an int64.
type PriceNormalizer func(price float64) (amount int64, ok bool)

// LegacyMinorUnits reproduces the amounts existing clients were charged:
// round(price*1000)*1000.
func LegacyMinorUnits(price float64) (int64, bool) {
	return minorUnits(math.Round(price*1000) * 1000)
}

// StandardMinorUnits is price in rupees to paise.
func StandardMinorUnits(price float64) (int64, bool) {
	return minorUnits(math.Round(price * 100))
}

// 2^63 is exactly representable; anything at or beyond it wraps on conversion.
const int64Bound = float64(1 << 63)

func minorUnits(scaled float64) (int64, bool) {
	if math.IsNaN(scaled) || scaled >= int64Bound || scaled < -int64Bound {
		return 0, false
	}
	return int64(scaled), true
}

func NormalizerFor(scale string) (PriceNormalizer, error) {
	switch scale {
	case ScaleLegacy, "":
		return LegacyMinorUnits, nil
	case ScaleStandard:
		return StandardMinorUnits, nil
	}
	return nil, fmt.Errorf("payment: unknown price scale %q", scale)
}

// Price is the request's price as sent: a JSON number or a numeric string.
// Raw keeps the text for cache keys.
type Price struct {
	Raw   string
	Value float64
	Valid bool
}

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(b)
	}
	p.Raw = raw

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	p.Value = v
	p.Valid = true
	return nil
}
