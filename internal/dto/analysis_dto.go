package dto

// AnalysisParams are the four fit controls. Bounds match the dashboard
// sliders; requests outside them are rejected up front.
type AnalysisParams struct {
	CorrectBaseline bool    `json:"correct_baseline"`
	ApproxPeakWidth float64 `json:"approx_peak_width" validate:"min=0.01,max=5"`
	Buffer          int     `json:"buffer" validate:"min=10,max=500"`
	Prominence      float64 `json:"prominence" validate:"min=0.001,max=1"`
}

// ProcessRequest drives process, plot and export alike: the three derived
// outputs are all recomputed from the same inputs. Params may be omitted, in
// which case the engine defaults apply. TimeUnit is deliberately not
// restricted here: an unrecognized unit label converts nothing and surfaces
// as a warning, not a request error.
type ProcessRequest struct {
	Delimiter    string          `json:"delimiter" validate:"required"`
	TimeColumn   string          `json:"time_column" validate:"required"`
	SignalColumn string          `json:"signal_column" validate:"required"`
	TimeUnit     string          `json:"time_unit" validate:"required"`
	Params       *AnalysisParams `json:"params"`
}

type PeakResponse struct {
	RetentionTime float64 `json:"rt"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Amplitude     float64 `json:"amplitude"`
	Skew          float64 `json:"skew"`
}

// PeakSummary mirrors the original metrics grid.
type PeakSummary struct {
	Count      int     `json:"count"`
	HeightMean float64 `json:"height_mean"`
	HeightMax  float64 `json:"height_max"`
	HeightMin  float64 `json:"height_min"`
	AreaTotal  float64 `json:"area_total"`
	AreaMean   float64 `json:"area_mean"`
	AreaMax    float64 `json:"area_max"`
}

type ProcessResponse struct {
	EngineAvailable bool           `json:"engine_available"`
	Peaks           []PeakResponse `json:"peaks"`
	Summary         *PeakSummary   `json:"summary,omitempty"`
	Warnings        []string       `json:"warnings"`
	TimeColumn      string         `json:"time_column"`
	SignalColumn    string         `json:"signal_column"`
	TimeUnit        string         `json:"time_unit"`
	RowCount        int            `json:"row_count"`
	// TimeStart/TimeEnd are the normalized time axis bounds in minutes,
	// ready for the client's plot axis.
	TimeStart float64 `json:"time_start"`
	TimeEnd   float64 `json:"time_end"`
}
