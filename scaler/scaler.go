// Package scaler z-scores a series against a trailing window, so prices from
// different instruments and eras land on a comparable scale.
package scaler

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Rolling standardises each sample with the mean and population standard
// deviation of the trailing Window samples (fewer during warm-up). Fit stores
// the statistics so the scaling can be inverted later.
type Rolling struct {
	Window int

	means []float64
	stds  []float64
}

// NewRolling returns a scaler over window samples.
func NewRolling(window int) *Rolling {
	if window < 1 {
		window = 1
	}
	return &Rolling{Window: window}
}

// Stats returns the mean and population standard deviation of values.
func Stats(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// Scale standardises v against mean and std; a zero std maps to 0.
func Scale(v, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (v - mean) / std
}

// Fit computes the trailing statistics of every position in series.
func (r *Rolling) Fit(series []float64) {
	r.means = make([]float64, len(series))
	r.stds = make([]float64, len(series))
	for t := range series {
		lo := t - r.Window + 1
		if lo < 0 {
			lo = 0
		}
		r.means[t], r.stds[t] = Stats(series[lo : t+1])
	}
}

// Transform scales series with the fitted statistics.
func (r *Rolling) Transform(series []float64) ([]float64, error) {
	if len(series) != len(r.means) {
		return nil, errors.New("scaler: series length differs from fitted length")
	}
	out := make([]float64, len(series))
	for t, v := range series {
		out[t] = Scale(v, r.means[t], r.stds[t])
	}
	return out, nil
}

// FitTransform is Fit followed by Transform on the same series.
func (r *Rolling) FitTransform(series []float64) []float64 {
	r.Fit(series)
	out, _ := r.Transform(series)
	return out
}

// InverseTransform maps scaled values back with the fitted statistics.
func (r *Rolling) InverseTransform(scaled []float64) ([]float64, error) {
	if len(scaled) != len(r.means) {
		return nil, errors.New("scaler: series length differs from fitted length")
	}
	out := make([]float64, len(scaled))
	for t, v := range scaled {
		out[t] = v*r.stds[t] + r.means[t]
	}
	return out, nil
}
