package wavelet

import (
	"errors"
	"fmt"
)

// CoeffLen returns the number of coefficients a single-level decomposition
// of n samples produces with a filter of length f.
func CoeffLen(n, f int) int {
	return (n + f - 1) / 2
}

// Decompose runs one level of the forward transform and returns the
// approximation and detail coefficients, each of length CoeffLen(len(x), F).
func Decompose(x []float64, w Wavelet, mode Mode) (approx, detail []float64, err error) {
	n, f := len(x), w.Len()
	if f == 0 {
		return nil, nil, errors.New("wavelet has no filter taps")
	}
	if n < 1 {
		return nil, nil, errors.New("cannot decompose an empty signal")
	}
	out := CoeffLen(n, f)
	approx = make([]float64, out)
	detail = make([]float64, out)
	for o := 0; o < out; o++ {
		i := 2*o + 1
		var a, d float64
		for j := 0; j < f; j++ {
			v := mode.at(x, i-j)
			a += w.DecLo[j] * v
			d += w.DecHi[j] * v
		}
		approx[o] = a
		detail[o] = d
	}
	return approx, detail, nil
}

// Reconstruct inverts Decompose. The result has 2*len(approx)-F+2 samples,
// which equals the original length for even-length input.
func Reconstruct(approx, detail []float64, w Wavelet) ([]float64, error) {
	if len(approx) != len(detail) {
		return nil, fmt.Errorf("coefficient length mismatch: approx=%d detail=%d", len(approx), len(detail))
	}
	n, f := len(approx), w.Len()
	outLen := 2*n - f + 2
	if outLen <= 0 {
		return nil, fmt.Errorf("%d coefficients are too few for a %d-tap filter", n, f)
	}
	out := make([]float64, outLen)
	// full upsampled convolution, keeping indices [f-2, 2n-1]
	for p := f - 2; p < 2*n; p++ {
		var s float64
		kLo := (p - f + 2) / 2
		if kLo < 0 {
			kLo = 0
		}
		for k := kLo; k <= p/2 && k < n; k++ {
			t := p - 2*k
			if t < 0 || t >= f {
				continue
			}
			s += approx[k]*w.RecLo[t] + detail[k]*w.RecHi[t]
		}
		out[p-f+2] = s
	}
	return out, nil
}
