package wavelet

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// HardThreshold returns a copy of c with every coefficient whose magnitude is
// below t set to zero.
func HardThreshold(c []float64, t float64) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		if math.Abs(v) >= t {
			out[i] = v
		}
	}
	return out
}

// Policy decides the thresholds applied to a decomposition.
type Policy int

const (
	// StdHalf thresholds each coefficient array independently at half its
	// population standard deviation.
	StdHalf Policy = iota
	// Universal leaves the approximation untouched and thresholds the detail
	// at sigma*sqrt(2 ln n), sigma estimated from its mean absolute deviation.
	Universal
)

func (p Policy) String() string {
	switch p {
	case StdHalf:
		return "std"
	case Universal:
		return "universal"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a policy name to a Policy. The empty string selects StdHalf.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "std":
		return StdHalf, nil
	case "universal":
		return Universal, nil
	}
	return 0, fmt.Errorf("unknown threshold policy %q", name)
}

// Apply thresholds a decomposition of a signal with n samples.
func (p Policy) Apply(approx, detail []float64, n int) (a, d []float64) {
	switch p {
	case Universal:
		sigma := MeanAbsDev(detail) / 0.6745
		t := sigma * math.Sqrt(2*math.Log(float64(n)))
		return append([]float64(nil), approx...), HardThreshold(detail, t)
	default:
		return HardThreshold(approx, stdHalf(approx)), HardThreshold(detail, stdHalf(detail))
	}
}

func stdHalf(c []float64) float64 {
	if len(c) == 0 {
		return 0
	}
	s := stat.PopStdDev(c, nil)
	if math.IsNaN(s) {
		return 0
	}
	return s / 2
}

// MeanAbsDev is the mean absolute deviation of c around its mean.
func MeanAbsDev(c []float64) float64 {
	if len(c) == 0 {
		return 0
	}
	m := stat.Mean(c, nil)
	var s float64
	for _, v := range c {
		s += math.Abs(v - m)
	}
	return s / float64(len(c))
}
