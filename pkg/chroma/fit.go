package chroma

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// fwhmFactor converts a gaussian sigma to full width at half maximum.
const fwhmFactor = 2.355

// fitPeak fits a skew-normal shape to the signal around one detected maximum
// and derives the reported retention time, height, width and area from the
// fitted curve. Windowing and width seeding use the smoothed series; the fit
// itself runs against the (baseline-corrected) signal.
func (c *Chromatogram) fitPeak(signal, smoothed []float64, idx int, opts FitOptions) Peak {
	n := len(signal)

	widthSamples := int(math.Round(opts.ApproxPeakWidth / c.dt))
	if widthSamples < 1 {
		widthSamples = 1
	}

	// Local base level within twice the expected width.
	lo := clamp(idx-2*widthSamples, 0, n-1)
	hi := clamp(idx+2*widthSamples, 0, n-1)
	base := smoothed[lo]
	for i := lo; i <= hi; i++ {
		if smoothed[i] < base {
			base = smoothed[i]
		}
	}

	// Half-height crossings on the smoothed series seed the width estimate.
	half := base + (smoothed[idx]-base)/2
	left := idx
	for left > 0 && smoothed[left] > half {
		left--
	}
	right := idx
	for right < n-1 && smoothed[right] > half {
		right++
	}
	if right <= left {
		right = clamp(left+1, 0, n-1)
	}

	// Fit window: the half-height span padded by the buffer parameter.
	wLo := clamp(left-opts.Buffer, 0, n-1)
	wHi := clamp(right+opts.Buffer, 0, n-1)

	sigma0 := float64(right-left) * c.dt / fwhmFactor
	if sigma0 < c.dt/2 {
		sigma0 = c.dt / 2
	}
	amp0 := signal[idx] - base
	if amp0 <= 0 {
		amp0 = smoothed[idx] - base
	}
	x0 := []float64{amp0, c.Time[idx], sigma0, 0}

	t := c.Time[wLo : wHi+1]
	s := signal[wLo : wHi+1]
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			amp, loc, scale, skew := x[0], x[1], math.Abs(x[2]), x[3]
			if scale == 0 {
				return math.Inf(1)
			}
			sse := 0.0
			for i, ti := range t {
				r := skewNormal(ti, amp, loc, scale, skew) + base - s[i]
				sse += r * r
			}
			return sse
		},
	}

	params := x0
	if result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{}); err == nil && finite(result.X) {
		params = result.X
	}
	amp, loc, scale, skew := params[0], params[1], math.Abs(params[2]), params[3]

	// Report from the reconstructed curve on the window grid.
	rt := loc
	height := base
	area := 0.0
	for i, ti := range t {
		v := skewNormal(ti, amp, loc, scale, skew)
		if v+base > height {
			height = v + base
			rt = ti
		}
		if i > 0 {
			prev := skewNormal(t[i-1], amp, loc, scale, skew)
			area += (v + prev) / 2 * (ti - t[i-1])
		}
	}

	return Peak{
		RetentionTime: rt,
		Height:        height,
		Area:          area,
		Width:         scale * fwhmFactor,
		Amplitude:     amp,
		Skew:          skew,
	}
}

// skewNormal evaluates an amplitude-parametrized skew-normal shape.
func skewNormal(t, amp, loc, scale, skew float64) float64 {
	z := (t - loc) / scale
	return amp * math.Exp(-z*z/2) * (1 + math.Erf(skew*z/math.Sqrt2))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
