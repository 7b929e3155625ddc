package chroma

import (
	"fmt"
	"math"
)

// Chromatogram binds a time axis (minutes) to a detector signal and exposes
// the peak-fitting entry point. Construction validates the series; the fit
// itself happens in FitPeaks.
type Chromatogram struct {
	Time   []float64
	Signal []float64

	dt float64 // mean sampling interval in minutes
}

// Peak is one detected and fitted chromatographic peak.
type Peak struct {
	RetentionTime float64 `json:"rt"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Amplitude     float64 `json:"amplitude"`
	Skew          float64 `json:"skew"`
}

// FitOptions mirror the dashboard's analysis parameters.
type FitOptions struct {
	CorrectBaseline bool
	// ApproxPeakWidth is the expected peak width in minutes.
	ApproxPeakWidth float64
	// Buffer is the number of samples padded around a detected peak when
	// windowing the shape fit.
	Buffer int
	// Prominence is the minimum relative prominence (of the normalized
	// signal) for a maximum to count as a peak.
	Prominence float64
}

// DefaultFitOptions match the dashboard's initial slider positions.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		CorrectBaseline: false,
		ApproxPeakWidth: 0.1,
		Buffer:          100,
		Prominence:      0.02,
	}
}

// minFitSamples is the smallest series FitPeaks accepts; below this the
// smoothing and width estimation degenerate.
const minFitSamples = 10

// New builds a chromatogram from parallel time and signal series.
func New(time, signal []float64) (*Chromatogram, error) {
	if len(time) != len(signal) {
		return nil, fmt.Errorf("time and signal length mismatch: %d vs %d", len(time), len(signal))
	}
	if len(time) < 2 {
		return nil, fmt.Errorf("chromatogram needs at least 2 samples, got %d", len(time))
	}
	for i, v := range time {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("time column contains a non-numeric value at row %d", i+1)
		}
	}
	for i, v := range signal {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("signal column contains a non-numeric value at row %d", i+1)
		}
	}
	span := time[len(time)-1] - time[0]
	if span <= 0 {
		return nil, fmt.Errorf("time column must be increasing (span %.6g)", span)
	}
	return &Chromatogram{
		Time:   time,
		Signal: signal,
		dt:     span / float64(len(time)-1),
	}, nil
}

// FitPeaks runs the full analysis: optional baseline correction, smoothing,
// prominence-based maxima detection, then a per-peak skew-normal shape fit.
// The returned slice is ordered by retention time and empty when nothing
// clears the prominence threshold.
func (c *Chromatogram) FitPeaks(opts FitOptions) ([]Peak, error) {
	n := len(c.Signal)
	if n < minFitSamples {
		return nil, fmt.Errorf("too few samples for peak fitting: %d (need at least %d)", n, minFitSamples)
	}
	if opts.ApproxPeakWidth <= 0 {
		return nil, fmt.Errorf("approximate peak width must be positive, got %g", opts.ApproxPeakWidth)
	}

	widthSamples := int(math.Round(opts.ApproxPeakWidth / c.dt))
	if widthSamples < 1 {
		widthSamples = 1
	}
	if widthSamples > n/2 {
		widthSamples = n / 2
	}

	signal := append([]float64(nil), c.Signal...)
	if opts.CorrectBaseline {
		baseline := snipBaseline(signal, widthSamples)
		for i := range signal {
			signal[i] -= baseline[i]
		}
	}

	smoothed := smooth(signal, widthSamples)
	maxima := findPeaks(smoothed, opts.Prominence)
	if len(maxima) == 0 {
		return []Peak{}, nil
	}

	peaks := make([]Peak, 0, len(maxima))
	for _, m := range maxima {
		peaks = append(peaks, c.fitPeak(signal, smoothed, m, opts))
	}
	return peaks, nil
}
