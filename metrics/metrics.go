package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FilterEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gowave_filter_evaluations_total",
			Help: "Total number of windows evaluated by the wavelet filter (by series).",
		},
		[]string{"series"},
	)

	FilterFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gowave_filter_fallbacks_total",
			Help: "Positions that produced a fallback or no value, by series and reason.",
		},
		[]string{"series", "reason"},
	)

	PredictValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gowave_predict_value",
			Help: "Latest de-noised estimate per series.",
		},
		[]string{"series"},
	)

	BarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gowave_bars_processed_total",
			Help: "Bars fed to the per-series indicator pipeline.",
		},
		[]string{"series"},
	)
)

// Fallback reasons.
const (
	ReasonWarmup        = "warmup"
	ReasonNumeric       = "numeric"
	ReasonExtrapolation = "extrapolation"
	ReasonBadBar        = "bad_bar"
)

func init() {
	prometheus.MustRegister(FilterEvaluations, FilterFallbacks, PredictValue, BarsProcessed)
}
