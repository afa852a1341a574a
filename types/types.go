package types

import (
	"fmt"
	"time"
)

// Bar is one OHLCV candle.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Key identifies one series: a trading pair on a timeframe.
type Key struct {
	Pair      string
	Timeframe string
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.Pair, k.Timeframe)
}

// Indicators is the per-bar output row. Fields other than Index and Close are
// only meaningful when Ready is true.
type Indicators struct {
	Index       int
	Close       float64
	Predict     float64 // de-noised estimate of Close
	Forecast    float64 // Predict extrapolated Horizon bars ahead
	Scaled      float64 // Close z-scored over the filter window
	PredictDiff float64 // (Predict - Close) in window std units, divided by the scale divisor
	RSI         float64
	MFI         float64
	Ready       bool
}
