package chroma

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// smooth applies a gaussian kernel sized from the expected peak width via
// FFT convolution. Edges are replicated before convolving so boundary samples
// do not droop toward zero.
func smooth(signal []float64, widthSamples int) []float64 {
	n := len(signal)
	sigma := float64(widthSamples) / 4
	if sigma < 1 {
		sigma = 1
	}
	half := int(math.Ceil(3 * sigma))
	kernel := gaussianKernel(sigma, half)

	// Edge-replicated padding, one kernel half-width per side.
	padded := make([]float64, n+2*half)
	for i := 0; i < half; i++ {
		padded[i] = signal[0]
		padded[len(padded)-1-i] = signal[n-1]
	}
	copy(padded[half:], signal)

	size := 1
	for size < len(padded)+len(kernel)-1 {
		size <<= 1
	}
	a := make([]complex128, size)
	b := make([]complex128, size)
	for i, v := range padded {
		a[i] = complex(v, 0)
	}
	for i, v := range kernel {
		b[i] = complex(v, 0)
	}

	fa := fft.FFT(a)
	fb := fft.FFT(b)
	for i := range fa {
		fa[i] *= fb[i]
	}
	conv := fft.IFFT(fa)

	out := make([]float64, n)
	for i := range out {
		// Kernel center is at offset half; original sample i sits at
		// padded index i+half.
		out[i] = real(conv[i+2*half])
	}
	return out
}

func gaussianKernel(sigma float64, half int) []float64 {
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// findPeaks returns the indices of local maxima whose prominence on the
// min-max normalized signal is at least minProminence.
func findPeaks(signal []float64, minProminence float64) []int {
	n := len(signal)
	if n < 3 {
		return nil
	}
	lo := floats.Min(signal)
	hi := floats.Max(signal)
	if hi <= lo {
		return nil
	}
	norm := make([]float64, n)
	for i, v := range signal {
		norm[i] = (v - lo) / (hi - lo)
	}

	var peaks []int
	for i := 1; i < n-1; i++ {
		if !(norm[i] > norm[i-1] && norm[i] >= norm[i+1]) {
			continue
		}
		if prominence(norm, i) >= minProminence {
			peaks = append(peaks, i)
		}
		// Skip a plateau so a flat top is reported once.
		for i < n-1 && norm[i+1] == norm[i] {
			i++
		}
	}
	return peaks
}

// prominence measures how much a peak stands out: its height above the higher
// of the two valley minima separating it from taller terrain (or the signal
// edge on that side).
func prominence(norm []float64, peak int) float64 {
	leftMin := norm[peak]
	for i := peak - 1; i >= 0; i-- {
		if norm[i] > norm[peak] {
			break
		}
		if norm[i] < leftMin {
			leftMin = norm[i]
		}
	}
	rightMin := norm[peak]
	for i := peak + 1; i < len(norm); i++ {
		if norm[i] > norm[peak] {
			break
		}
		if norm[i] < rightMin {
			rightMin = norm[i]
		}
	}
	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return norm[peak] - base
}
