package chroma

import "math"

// snipBaseline estimates the signal baseline with the SNIP algorithm: an
// LLS compression, iterative symmetric clipping with a growing window, then
// the inverse transform. maxWindow is the half-width in samples up to which
// the clipping window grows, so features wider than the expected peak width
// survive into the baseline while peaks are eaten away.
func snipBaseline(signal []float64, maxWindow int) []float64 {
	n := len(signal)
	if n == 0 {
		return nil
	}
	if maxWindow < 1 {
		maxWindow = 1
	}
	if maxWindow > (n-1)/2 {
		maxWindow = (n - 1) / 2
	}

	// Shift to non-negative before the log compression.
	min := signal[0]
	for _, v := range signal {
		if v < min {
			min = v
		}
	}

	h := make([]float64, n)
	for i, v := range signal {
		h[i] = lls(v - min)
	}

	clipped := make([]float64, n)
	for m := 1; m <= maxWindow; m++ {
		copy(clipped, h)
		for i := m; i < n-m; i++ {
			avg := (h[i-m] + h[i+m]) / 2
			if avg < h[i] {
				clipped[i] = avg
			}
		}
		h, clipped = clipped, h
	}

	out := make([]float64, n)
	for i, v := range h {
		out[i] = llsInv(v) + min
	}
	return out
}

func lls(v float64) float64 {
	return math.Log(math.Log(math.Sqrt(v+1)+1) + 1)
}

func llsInv(v float64) float64 {
	e := math.Exp(math.Exp(v)-1) - 1
	return e*e - 1
}
