package plot

import (
	"bytes"
	"math"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderProducesPNG(t *testing.T) {
	n := 200
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i) * 0.05
		z := (x[i] - 5) / 0.4
		y[i] = 10 * math.Exp(-z*z/2)
	}

	r := NewRenderer()
	img, err := r.Render(Request{
		Title:  "Cromatograma",
		XLabel: "Tempo (min)",
		YLabel: "Sinal",
		X:      x,
		Y:      y,
		Peaks:  []Marker{{X: 5, Y: 10}},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Errorf("output does not start with the PNG signature: % x", img[:8])
	}
}

func TestRenderWithoutPeaks(t *testing.T) {
	r := NewRenderer()
	img, err := r.Render(Request{
		XLabel: "Tempo (min)",
		YLabel: "Sinal",
		X:      []float64{0, 1, 2, 3},
		Y:      []float64{1, 3, 2, 1},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestRenderMismatchedSeries(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(Request{
		X: []float64{0, 1, 2},
		Y: []float64{1, 2},
	})
	if err == nil {
		t.Fatal("Render() error = nil, want mismatch error")
	}
}
