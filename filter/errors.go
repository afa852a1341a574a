package filter

import "errors"

var (
	// ErrInsufficientData is returned when a window is shorter than the
	// configured size. Callers treat the position as "no signal".
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNumeric is returned for non-finite input or a reconstruction that
	// cannot be aligned to the window.
	ErrNumeric = errors.New("numeric error")

	// ErrExtrapolation is returned when the forecast spline cannot be fitted.
	// Callers fall back to the horizon-zero value.
	ErrExtrapolation = errors.New("extrapolation failed")
)
