package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DecimalParam declares a tunable decimal parameter: inclusive bounds, a
// default, and the number of decimal places a value may carry.
type DecimalParam struct {
	Name     string
	Min      decimal.Decimal
	Max      decimal.Decimal
	Default  decimal.Decimal
	Decimals int32
}

// Dec declares a DecimalParam from string literals. It panics on malformed
// literals, so use it only for package-level declarations.
func Dec(name, lo, hi, def string, decimals int32) DecimalParam {
	return DecimalParam{
		Name:     name,
		Min:      decimal.RequireFromString(lo),
		Max:      decimal.RequireFromString(hi),
		Default:  decimal.RequireFromString(def),
		Decimals: decimals,
	}
}

// Check validates v against the declaration.
func (p DecimalParam) Check(v float64) error {
	d := decimal.NewFromFloat(v)
	if !d.Round(p.Decimals).Equal(d) {
		return fmt.Errorf("%s (%s) has more than %d decimal places", p.Name, d, p.Decimals)
	}
	if d.LessThan(p.Min) || d.GreaterThan(p.Max) {
		return fmt.Errorf("%s (%s) must be within [%s, %s]", p.Name, d, p.Min, p.Max)
	}
	return nil
}

// DefaultFloat returns the default as a float64.
func (p DecimalParam) DefaultFloat() float64 {
	return p.Default.InexactFloat64()
}

// IntParam declares a tunable integer parameter with inclusive bounds.
type IntParam struct {
	Name    string
	Min     int
	Max     int
	Default int
}

// Check validates v against the declaration.
func (p IntParam) Check(v int) error {
	if v < p.Min || v > p.Max {
		return fmt.Errorf("%s (%d) must be within [%d, %d]", p.Name, v, p.Min, p.Max)
	}
	return nil
}

// Parameter declarations.
var (
	WindowParam      = IntParam{Name: "window", Min: 2, Max: 8192, Default: 512}
	HorizonParam     = IntParam{Name: "horizon", Min: 0, Max: 64, Default: 0}
	KnotSpacingParam = IntParam{Name: "knotSpacing", Min: 4, Max: 1024, Default: 64}

	ScaleDivisorParam  = Dec("scaleDivisor", "0.1", "1000", "10", 1)
	RSIOverboughtParam = Dec("rsiOverbought", "50", "100", "70", 2)
	RSIOversoldParam   = Dec("rsiOversold", "0", "50", "30", 2)
	MFIOverboughtParam = Dec("mfiOverbought", "50", "100", "80", 2)
	MFIOversoldParam   = Dec("mfiOversold", "0", "50", "20", 2)
)
