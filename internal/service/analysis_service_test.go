package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"chromalyzer-be/internal/dto"
	"chromalyzer-be/internal/repository/memory"
	"chromalyzer-be/pkg/plot"
	"chromalyzer-be/pkg/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaussianCSV renders a single-peak chromatogram as CSV text. Time is in
// seconds; the peak sits at center with the given width (both in seconds).
func gaussianCSV(n int, center, width, amp float64) []byte {
	var b strings.Builder
	b.WriteString("Tempo,Sinal\n")
	for i := 0; i < n; i++ {
		t := float64(i)
		z := (t - center) / width
		b.WriteString(fmt.Sprintf("%g,%g\n", t, amp*math.Exp(-z*z/2)))
	}
	return []byte(b.String())
}

type analysisFixture struct {
	ingest   IIngestService
	analysis IAnalysisService
}

func newAnalysisFixture(t *testing.T, engineEnabled bool) *analysisFixture {
	t.Helper()
	repo := memory.NewUploadRepository(time.Hour)
	ingest := NewIngestService(repo, tabular.NewParser(), 10, noopLogger{})
	analysis := NewAnalysisService(ingest, plot.NewRenderer(), engineEnabled, noopLogger{})
	return &analysisFixture{ingest: ingest, analysis: analysis}
}

func (f *analysisFixture) upload(t *testing.T, raw []byte) uuid.UUID {
	t.Helper()
	up, err := f.ingest.SaveUpload(context.Background(), "run.csv", raw)
	require.NoError(t, err)
	return up.Id
}

func processRequest() *dto.ProcessRequest {
	return &dto.ProcessRequest{
		Delimiter:    ",",
		TimeColumn:   "Tempo",
		SignalColumn: "Sinal",
		TimeUnit:     tabular.UnitSeconds,
	}
}

func TestProcessDetectsPeakAndNormalizesTime(t *testing.T) {
	f := newAnalysisFixture(t, true)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	res, err := f.analysis.Process(context.Background(), id, processRequest())
	require.NoError(t, err)

	assert.True(t, res.EngineAvailable)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 400, res.RowCount)

	// 0..399 seconds normalized to minutes.
	assert.InDelta(t, 0, res.TimeStart, 1e-9)
	assert.InDelta(t, 399.0/60, res.TimeEnd, 1e-9)

	require.Len(t, res.Peaks, 1)
	assert.InDelta(t, 150.0/60, res.Peaks[0].RetentionTime, 0.05)
	assert.InDelta(t, 50, res.Peaks[0].Height, 10)

	require.NotNil(t, res.Summary)
	assert.Equal(t, 1, res.Summary.Count)
	assert.InDelta(t, res.Peaks[0].Area, res.Summary.AreaTotal, 1e-9)
}

func TestProcessMissingColumns(t *testing.T) {
	f := newAnalysisFixture(t, true)
	id := f.upload(t, gaussianCSV(50, 25, 3, 10))

	req := processRequest()
	req.SignalColumn = "Intensidade"

	_, err := f.analysis.Process(context.Background(), id, req)
	require.Error(t, err)

	apiErr := apiErrorFrom(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Intensidade")
}

func TestProcessUnknownTimeUnitWarns(t *testing.T) {
	f := newAnalysisFixture(t, true)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	req := processRequest()
	req.TimeUnit = "Horas"

	res, err := f.analysis.Process(context.Background(), id, req)
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "Horas")
	// Without conversion the axis stays in raw units.
	assert.InDelta(t, 399, res.TimeEnd, 1e-9)
}

func TestProcessEngineDisabled(t *testing.T) {
	f := newAnalysisFixture(t, false)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	res, err := f.analysis.Process(context.Background(), id, processRequest())
	require.NoError(t, err)

	assert.False(t, res.EngineAvailable)
	assert.Empty(t, res.Peaks)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "unavailable")
}

func TestProcessFitFailureDegradesToWarning(t *testing.T) {
	f := newAnalysisFixture(t, true)
	// Three rows are below the minimum the peak engine accepts.
	id := f.upload(t, []byte("Tempo,Sinal\n0,1\n1,5\n2,1\n"))

	res, err := f.analysis.Process(context.Background(), id, processRequest())
	require.NoError(t, err)

	assert.Empty(t, res.Peaks)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "peak analysis failed")
	assert.Nil(t, res.Summary)
}

func TestProcessCustomParams(t *testing.T) {
	// A tall peak plus a bump at 4% of its height.
	var b strings.Builder
	b.WriteString("Tempo,Sinal\n")
	for i := 0; i < 400; i++ {
		t1 := (float64(i) - 120) / 10
		t2 := (float64(i) - 280) / 10
		v := 50*math.Exp(-t1*t1/2) + 2*math.Exp(-t2*t2/2)
		b.WriteString(fmt.Sprintf("%d,%g\n", i, v))
	}
	raw := []byte(b.String())

	f := newAnalysisFixture(t, true)

	res, err := f.analysis.Process(context.Background(), f.upload(t, raw), processRequest())
	require.NoError(t, err)
	require.Len(t, res.Peaks, 2, "default prominence keeps the small bump")

	req := processRequest()
	req.Params = &dto.AnalysisParams{
		ApproxPeakWidth: 0.15,
		Buffer:          50,
		Prominence:      0.5,
	}
	res, err = f.analysis.Process(context.Background(), f.upload(t, raw), req)
	require.NoError(t, err)
	require.Len(t, res.Peaks, 1, "raised prominence filters the small bump")
	assert.InDelta(t, 120.0/60, res.Peaks[0].RetentionTime, 0.05)
}

func TestRenderPlotReturnsPNG(t *testing.T) {
	f := newAnalysisFixture(t, true)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	png, err := f.analysis.RenderPlot(context.Background(), id, processRequest())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestExportPeaksCSV(t *testing.T) {
	f := newAnalysisFixture(t, true)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	out, name, err := f.analysis.ExportPeaksCSV(context.Background(), id, processRequest())
	require.NoError(t, err)
	assert.Equal(t, "picos_detectados.csv", name)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "rt,height,area,width,amplitude,skew", lines[0])
}

func TestExportPeaksCSVHeaderOnlyWhenEngineDisabled(t *testing.T) {
	f := newAnalysisFixture(t, false)
	id := f.upload(t, gaussianCSV(400, 150, 10, 50))

	out, _, err := f.analysis.ExportPeaksCSV(context.Background(), id, processRequest())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1)
}
