package filter

import (
	"fmt"
)

// Stream feeds a Filter one sample at a time. It is the per-bar entry point:
// the window fills during warm-up and then slides, and every query recomputes
// from the current window only.
//
// A Stream is not safe for concurrent use; give each (pair, timeframe) its
// own.
type Stream struct {
	f   *Filter
	win *window
}

// NewStream wraps f with a window buffer of f.Size() samples.
func NewStream(f *Filter) *Stream {
	return &Stream{f: f, win: newWindow(f.Size())}
}

// Push appends a sample, dropping the oldest one once the window is full.
func (s *Stream) Push(v float64) { s.win.Add(v) }

// Ready reports whether the window is warmed up.
func (s *Stream) Ready() bool { return s.win.Full() }

// Len returns the number of buffered samples.
func (s *Stream) Len() int { return s.win.Len() }

// Last returns the most recent sample, or 0 when empty.
func (s *Stream) Last() float64 { return s.win.Last() }

// Values returns a copy of the current window.
func (s *Stream) Values() []float64 { return s.win.Values() }

// Reset discards all buffered samples.
func (s *Stream) Reset() { s.win.Reset() }

// Model returns the de-noised estimate of the latest sample.
func (s *Stream) Model() (float64, error) {
	if !s.Ready() {
		return 0, s.warmupErr()
	}
	return s.f.FitAndModel(s.win.View())
}

// Estimate returns the model value and the horizon-step forecast of the
// current window.
func (s *Stream) Estimate(horizon int) (Estimate, error) {
	if !s.Ready() {
		return Estimate{}, s.warmupErr()
	}
	return s.f.Estimate(s.win.View(), horizon)
}

func (s *Stream) warmupErr() error {
	return fmt.Errorf("%w: warming up, %d of %d samples", ErrInsufficientData, s.win.Len(), s.f.Size())
}
