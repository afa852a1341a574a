package wavelet

import (
	"fmt"
	"strings"
)

// Mode selects how a signal is extended past its edges before filtering.
type Mode int

const (
	// Smooth extrapolates linearly using the first derivative at each edge.
	Smooth Mode = iota
	// Symmetric mirrors the signal including the edge sample.
	Symmetric
	// Reflect mirrors the signal excluding the edge sample.
	Reflect
	// Periodic wraps the signal around.
	Periodic
	// Constant repeats the edge sample.
	Constant
	// Zero pads with zeros.
	Zero
)

var modeNames = map[Mode]string{
	Smooth:    "smooth",
	Symmetric: "symmetric",
	Reflect:   "reflect",
	Periodic:  "periodic",
	Constant:  "constant",
	Zero:      "zero",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode. The empty string selects Smooth.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Smooth, nil
	}
	for m, s := range modeNames {
		if s == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown extension mode %q", name)
}

// at returns x[k] for any integer k, extending x according to the mode.
func (m Mode) at(x []float64, k int) float64 {
	n := len(x)
	if k >= 0 && k < n {
		return x[k]
	}
	switch m {
	case Zero:
		return 0
	case Constant:
		if k < 0 {
			return x[0]
		}
		return x[n-1]
	case Symmetric:
		p := 2 * n
		j := ((k % p) + p) % p
		if j < n {
			return x[j]
		}
		return x[p-1-j]
	case Reflect:
		if n == 1 {
			return x[0]
		}
		p := 2*n - 2
		j := ((k % p) + p) % p
		if j < n {
			return x[j]
		}
		return x[p-j]
	case Periodic:
		return x[((k%n)+n)%n]
	default: // Smooth
		if n == 1 {
			return x[0]
		}
		if k < 0 {
			return x[0] + float64(k)*(x[1]-x[0])
		}
		return x[n-1] + float64(k-n+1)*(x[n-1]-x[n-2])
	}
}
