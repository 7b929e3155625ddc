package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"chromalyzer-be/internal/dto"
	"chromalyzer-be/internal/pkg/logger"
	"chromalyzer-be/internal/pkg/serverutils"
	"chromalyzer-be/pkg/chroma"
	"chromalyzer-be/pkg/plot"
	"chromalyzer-be/pkg/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const exportFileName = "picos_detectados.csv"

type IAnalysisService interface {
	Process(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) (*dto.ProcessResponse, error)
	RenderPlot(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) ([]byte, error)
	ExportPeaksCSV(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) ([]byte, string, error)
}

type analysisService struct {
	ingestService IIngestService
	renderer      *plot.Renderer
	engineEnabled bool
	logger        logger.ILogger
}

func NewAnalysisService(
	ingestService IIngestService,
	renderer *plot.Renderer,
	engineEnabled bool,
	logger logger.ILogger,
) IAnalysisService {
	return &analysisService{
		ingestService: ingestService,
		renderer:      renderer,
		engineEnabled: engineEnabled,
		logger:        logger,
	}
}

// analysisRun is the shared outcome process, plot and export are all derived
// from. Peaks is empty (never nil) when detection found nothing, the engine
// is disabled, or the fit failed; in the failure cases Warnings says why.
type analysisRun struct {
	Times    []float64
	Signals  []float64
	Peaks    []chroma.Peak
	Warnings []string
	RowCount int
}

func (s *analysisService) Process(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) (*dto.ProcessResponse, error) {
	run, err := s.analyze(ctx, id, req)
	if err != nil {
		return nil, err
	}

	peaks := make([]dto.PeakResponse, 0, len(run.Peaks))
	for _, p := range run.Peaks {
		peaks = append(peaks, dto.PeakResponse{
			RetentionTime: p.RetentionTime,
			Height:        p.Height,
			Area:          p.Area,
			Width:         p.Width,
			Amplitude:     p.Amplitude,
			Skew:          p.Skew,
		})
	}

	res := &dto.ProcessResponse{
		EngineAvailable: s.engineEnabled,
		Peaks:           peaks,
		Warnings:        run.Warnings,
		TimeColumn:      req.TimeColumn,
		SignalColumn:    req.SignalColumn,
		TimeUnit:        req.TimeUnit,
		RowCount:        run.RowCount,
	}
	res.TimeStart, res.TimeEnd = timeBounds(run.Times)
	if len(run.Peaks) > 0 {
		res.Summary = summarize(run.Peaks)
	}
	return res, nil
}

func (s *analysisService) RenderPlot(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) ([]byte, error) {
	run, err := s.analyze(ctx, id, req)
	if err != nil {
		return nil, err
	}

	// Drop non-numeric sample pairs from the plotted curve.
	xs := make([]float64, 0, len(run.Times))
	ys := make([]float64, 0, len(run.Signals))
	for i := range run.Times {
		if math.IsNaN(run.Times[i]) || math.IsNaN(run.Signals[i]) {
			continue
		}
		xs = append(xs, run.Times[i])
		ys = append(ys, run.Signals[i])
	}

	markers := make([]plot.Marker, 0, len(run.Peaks))
	for _, p := range run.Peaks {
		markers = append(markers, plot.Marker{X: p.RetentionTime, Y: p.Height})
	}

	png, err := s.renderer.Render(plot.Request{
		Title:  "Cromatograma",
		XLabel: req.TimeColumn + " (min)",
		YLabel: req.SignalColumn,
		X:      xs,
		Y:      ys,
		Peaks:  markers,
	})
	if err != nil {
		return nil, serverutils.NewAPIError(fiber.StatusUnprocessableEntity, "failed to plot the chromatogram: "+err.Error())
	}
	return png, nil
}

func (s *analysisService) ExportPeaksCSV(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) ([]byte, string, error) {
	run, err := s.analyze(ctx, id, req)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// No index column, matching the original export.
	_ = w.Write([]string{"rt", "height", "area", "width", "amplitude", "skew"})
	for _, p := range run.Peaks {
		_ = w.Write([]string{
			formatFloat(p.RetentionTime),
			formatFloat(p.Height),
			formatFloat(p.Area),
			formatFloat(p.Width),
			formatFloat(p.Amplitude),
			formatFloat(p.Skew),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", serverutils.NewAPIError(fiber.StatusInternalServerError, "failed to write peak CSV: "+err.Error())
	}
	return buf.Bytes(), exportFileName, nil
}

// analyze runs the full interaction pipeline: re-parse the buffered upload,
// normalize the time column to minutes, then hand the two series to the peak
// engine. Engine failures are reported as warnings and an empty peak table,
// never as request errors, so the dashboard keeps rendering the raw curve.
func (s *analysisService) analyze(ctx context.Context, id uuid.UUID, req *dto.ProcessRequest) (*analysisRun, error) {
	dataset, _, _, err := s.ingestService.LoadDataset(ctx, id, req.Delimiter)
	if err != nil {
		return nil, err
	}

	var missing []string
	if !dataset.HasColumn(req.TimeColumn) {
		missing = append(missing, req.TimeColumn)
	}
	if !dataset.HasColumn(req.SignalColumn) {
		missing = append(missing, req.SignalColumn)
	}
	if len(missing) > 0 {
		return nil, serverutils.NewAPIError(
			fiber.StatusUnprocessableEntity,
			fmt.Sprintf("columns not found in the dataset: %v", missing),
		)
	}

	run := &analysisRun{
		Peaks:    []chroma.Peak{},
		Warnings: []string{},
		RowCount: dataset.RowCount(),
	}

	normalized, recognized := tabular.NormalizeTimeColumn(dataset, req.TimeColumn, req.TimeUnit)
	if !recognized {
		warning := fmt.Sprintf("unknown time unit %q: no conversion applied", req.TimeUnit)
		run.Warnings = append(run.Warnings, warning)
		s.logger.Warn("analysis", "unknown time unit", map[string]interface{}{
			"upload_id": id.String(),
			"time_unit": req.TimeUnit,
		})
	}

	run.Times, _ = normalized.Float64Column(req.TimeColumn)
	run.Signals, _ = normalized.Float64Column(req.SignalColumn)

	if !s.engineEnabled {
		run.Warnings = append(run.Warnings, "peak analysis engine is unavailable: peak detection skipped")
		return run, nil
	}

	opts := chroma.DefaultFitOptions()
	if req.Params != nil {
		opts = chroma.FitOptions{
			CorrectBaseline: req.Params.CorrectBaseline,
			ApproxPeakWidth: req.Params.ApproxPeakWidth,
			Buffer:          req.Params.Buffer,
			Prominence:      req.Params.Prominence,
		}
	}

	peaks, err := s.fitPeaks(run.Times, run.Signals, opts)
	if err != nil {
		// Engine failures degrade to "no peaks found" per the dashboard
		// contract; the message still reaches the user.
		run.Warnings = append(run.Warnings, "peak analysis failed: "+err.Error())
		s.logger.Error("analysis", "peak fitting failed", map[string]interface{}{
			"upload_id": id.String(),
			"error":     err.Error(),
		})
		return run, nil
	}

	run.Peaks = peaks
	s.logger.Info("analysis", "peak fitting finished", map[string]interface{}{
		"upload_id": id.String(),
		"peaks":     len(peaks),
	})
	return run, nil
}

func (s *analysisService) fitPeaks(times, signals []float64, opts chroma.FitOptions) ([]chroma.Peak, error) {
	cg, err := chroma.New(times, signals)
	if err != nil {
		return nil, err
	}
	return cg.FitPeaks(opts)
}

func summarize(peaks []chroma.Peak) *dto.PeakSummary {
	sum := &dto.PeakSummary{
		Count:     len(peaks),
		HeightMin: peaks[0].Height,
		HeightMax: peaks[0].Height,
		AreaMax:   peaks[0].Area,
	}
	var heightTotal float64
	for _, p := range peaks {
		heightTotal += p.Height
		sum.AreaTotal += p.Area
		if p.Height > sum.HeightMax {
			sum.HeightMax = p.Height
		}
		if p.Height < sum.HeightMin {
			sum.HeightMin = p.Height
		}
		if p.Area > sum.AreaMax {
			sum.AreaMax = p.Area
		}
	}
	sum.HeightMean = heightTotal / float64(len(peaks))
	sum.AreaMean = sum.AreaTotal / float64(len(peaks))
	return sum
}

// timeBounds returns the min and max of the finite values in the normalized
// time axis; zeros when nothing is numeric.
func timeBounds(times []float64) (float64, float64) {
	first := true
	var lo, hi float64
	for _, t := range times {
		if math.IsNaN(t) {
			continue
		}
		if first {
			lo, hi = t, t
			first = false
			continue
		}
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}
	return lo, hi
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
