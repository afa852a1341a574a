// Package filter implements the rolling wavelet de-noising filter: each
// window is de-trended, decomposed one level, hard-thresholded, reconstructed
// and re-trended, and the last reconstructed sample is the model value.
// Optionally a cubic smoothing spline through the reconstruction forecasts a
// few steps ahead.
package filter

import (
	"fmt"
	"iter"
	"math"

	"github.com/evdnx/gowave/spline"
	"github.com/evdnx/gowave/wavelet"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultKnotSpacing is the initial number of reconstructed samples per
// interior spline knot used for forecasting. The spacing is halved until the
// spline's residual sum of squares is at most the window length.
const DefaultKnotSpacing = 64

// Filter holds the fixed configuration of a rolling wavelet filter. It keeps
// no per-call state, so the same Filter may evaluate any number of windows.
type Filter struct {
	size        int
	wavelet     wavelet.Wavelet
	mode        wavelet.Mode
	policy      wavelet.Policy
	knotSpacing int
}

// Option customises a Filter.
type Option func(*Filter)

// WithWavelet selects the wavelet basis (default Haar).
func WithWavelet(w wavelet.Wavelet) Option {
	return func(f *Filter) { f.wavelet = w }
}

// WithMode selects the boundary extension mode (default Smooth).
func WithMode(m wavelet.Mode) Option {
	return func(f *Filter) { f.mode = m }
}

// WithPolicy selects the thresholding policy (default StdHalf).
func WithPolicy(p wavelet.Policy) Option {
	return func(f *Filter) { f.policy = p }
}

// WithKnotSpacing sets the initial forecast spline knot spacing.
func WithKnotSpacing(n int) Option {
	return func(f *Filter) { f.knotSpacing = n }
}

// New creates a filter over windows of size samples.
func New(size int, opts ...Option) (*Filter, error) {
	f := &Filter{
		size:        size,
		wavelet:     wavelet.Haar(),
		mode:        wavelet.Smooth,
		policy:      wavelet.StdHalf,
		knotSpacing: DefaultKnotSpacing,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.wavelet.Len() < 2 {
		return nil, fmt.Errorf("wavelet %q has %d taps", f.wavelet.Name, f.wavelet.Len())
	}
	if size < f.wavelet.Len() {
		return nil, fmt.Errorf("window %d is shorter than the %s filter length %d",
			size, f.wavelet.Name, f.wavelet.Len())
	}
	return f, nil
}

// Size returns the window length.
func (f *Filter) Size() int { return f.size }

// Reconstruct returns the de-noised, re-trended reconstruction of the last
// Size() samples of window. The result has exactly Size() samples.
func (f *Filter) Reconstruct(window []float64) ([]float64, error) {
	if len(window) < f.size {
		return nil, fmt.Errorf("%w: window has %d samples, need %d", ErrInsufficientData, len(window), f.size)
	}
	data := window[len(window)-f.size:]
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite sample %v at offset %d", ErrNumeric, v, i)
		}
	}

	n := len(data)
	t := make([]float64, n)
	floats.Span(t, 0, float64(n-1))
	slope := trendSlope(t, data)

	// Only the slope is removed; the intercept stays in the de-trended series.
	detrended := make([]float64, n)
	for i, v := range data {
		detrended[i] = v - slope*t[i]
	}

	approx, detail, err := wavelet.Decompose(detrended, f.wavelet, f.mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumeric, err)
	}
	approx, detail = f.policy.Apply(approx, detail, n)
	restored, err := wavelet.Reconstruct(approx, detail, f.wavelet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumeric, err)
	}

	// Align the tail of the reconstruction with the tail of the window.
	ldiff := len(restored) - n
	if ldiff < 0 {
		return nil, fmt.Errorf("%w: reconstruction has %d samples, window %d", ErrNumeric, len(restored), n)
	}
	model := restored[ldiff:]
	for i := range model {
		model[i] += slope * t[i]
	}
	return model, nil
}

// FitAndModel returns the de-noised estimate of the most recent sample.
func (f *Filter) FitAndModel(window []float64) (float64, error) {
	model, err := f.Reconstruct(window)
	if err != nil {
		return 0, err
	}
	return model[len(model)-1], nil
}

// FitAndPredict forecasts horizon steps past the most recent sample. A zero
// horizon is the same as FitAndModel.
func (f *Filter) FitAndPredict(window []float64, horizon int) (float64, error) {
	if horizon < 0 {
		return 0, fmt.Errorf("horizon must not be negative, got %d", horizon)
	}
	model, err := f.Reconstruct(window)
	if err != nil {
		return 0, err
	}
	if horizon == 0 {
		return model[len(model)-1], nil
	}
	return f.extrapolate(model, horizon)
}

// Estimate is the model value of a window together with its forecast.
type Estimate struct {
	Model    float64
	Forecast float64
	// Fallback is the extrapolation error that made Forecast fall back to
	// Model, if any.
	Fallback error
}

// Estimate reconstructs window once and returns both the model value and the
// horizon-step forecast. An extrapolation failure is not an error here: the
// forecast falls back to the model value and the cause is kept in Fallback.
func (f *Filter) Estimate(window []float64, horizon int) (Estimate, error) {
	if horizon < 0 {
		return Estimate{}, fmt.Errorf("horizon must not be negative, got %d", horizon)
	}
	model, err := f.Reconstruct(window)
	if err != nil {
		return Estimate{}, err
	}
	e := Estimate{Model: model[len(model)-1]}
	e.Forecast = e.Model
	if horizon == 0 {
		return e, nil
	}
	v, err := f.extrapolate(model, horizon)
	if err != nil {
		e.Fallback = err
		return e, nil
	}
	e.Forecast = v
	return e, nil
}

func (f *Filter) extrapolate(model []float64, horizon int) (float64, error) {
	l := len(model)
	x := make([]float64, l)
	floats.Span(x, 0, float64(l-1))
	s, err := spline.FitSmoothing(x, model, float64(l), spline.KnotsFor(l, f.knotSpacing))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExtrapolation, err)
	}
	v := s.At(float64(l - 1 + horizon))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: forecast is not finite", ErrExtrapolation)
	}
	return v, nil
}

// Point is one output of Apply.
type Point struct {
	Index int
	Value float64
	Valid bool
}

// Apply lazily evaluates FitAndModel at every position t >= Size()-1 of
// series, using only series[t-Size()+1 .. t]. A failed window yields a Point
// with Valid false and does not affect its neighbours.
func (f *Filter) Apply(series []float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for t := f.size - 1; t < len(series); t++ {
			v, err := f.FitAndModel(series[t-f.size+1 : t+1])
			p := Point{Index: t, Value: v, Valid: err == nil}
			if !p.Valid {
				p.Value = math.NaN()
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ApplyAll materialises Apply into a slice aligned with series; positions
// without a value hold NaN.
func (f *Filter) ApplyAll(series []float64) []float64 {
	out := make([]float64, len(series))
	for i := range out {
		out[i] = math.NaN()
	}
	for p := range f.Apply(series) {
		out[p.Index] = p.Value
	}
	return out
}

// PredictAll evaluates the forecast at every position like ApplyAll. Windows
// whose spline cannot be fitted fall back to the horizon-zero value.
func (f *Filter) PredictAll(series []float64, horizon int) []float64 {
	_, forecast := f.EstimateAll(series, horizon)
	return forecast
}

// EstimateAll reconstructs every window of series once and returns the model
// and forecast columns aligned with series. Positions without a value hold
// NaN in both; a negative horizon leaves every position empty.
func (f *Filter) EstimateAll(series []float64, horizon int) (model, forecast []float64) {
	model = make([]float64, len(series))
	forecast = make([]float64, len(series))
	for i := range model {
		model[i] = math.NaN()
		forecast[i] = math.NaN()
	}
	if horizon < 0 {
		return model, forecast
	}
	for t := f.size - 1; t < len(series); t++ {
		e, err := f.Estimate(series[t-f.size+1:t+1], horizon)
		if err != nil {
			continue
		}
		model[t] = e.Model
		forecast[t] = e.Forecast
	}
	return model, forecast
}

// trendSlope is the least-squares slope of y against t; a degenerate fit
// yields zero.
func trendSlope(t, y []float64) float64 {
	if len(t) < 2 {
		return 0
	}
	_, beta := stat.LinearRegression(t, y, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0
	}
	return beta
}
