package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Marker is one peak overlay point: an (x, y) marker plus a dotted drop-line
// from the x axis up to y.
type Marker struct {
	X float64
	Y float64
}

// Request describes one chromatogram rendering.
type Request struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Peaks  []Marker
	Width  int
	Height int
}

var (
	signalColor = drawing.Color{R: 0, G: 90, B: 200, A: 255}
	peakColor   = drawing.Color{R: 220, G: 30, B: 30, A: 255}
)

// Renderer draws signal-vs-time charts as PNG. It is stateless.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PNG bytes for the request. The raw curve is always
// drawn; peak markers and drop-lines only when markers are present.
func (r *Renderer) Render(req Request) ([]byte, error) {
	if len(req.X) == 0 || len(req.X) != len(req.Y) {
		return nil, fmt.Errorf("mismatched plot series: %d x values, %d y values", len(req.X), len(req.Y))
	}
	width := req.Width
	if width <= 0 {
		width = 1200
	}
	height := req.Height
	if height <= 0 {
		height = 600
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    req.YLabel,
			XValues: req.X,
			YValues: req.Y,
			Style: chart.Style{
				StrokeColor: signalColor,
				StrokeWidth: 1.2,
			},
		},
	}

	for _, p := range req.Peaks {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{p.X, p.X},
			YValues: []float64{0, p.Y},
			Style: chart.Style{
				StrokeColor:     peakColor,
				StrokeWidth:     1,
				StrokeDashArray: []float64{3, 3},
			},
		})
	}
	if len(req.Peaks) > 0 {
		xs := make([]float64, len(req.Peaks))
		ys := make([]float64, len(req.Peaks))
		for i, p := range req.Peaks {
			xs[i] = p.X
			ys[i] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "Picos Detetados",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    peakColor,
			},
		})
	}

	ch := chart.Chart{
		Title:      req.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: req.XLabel},
		YAxis:      chart.YAxis{Name: req.YLabel},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
