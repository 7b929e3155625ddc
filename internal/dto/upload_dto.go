package dto

import "github.com/google/uuid"

type UploadResponse struct {
	Id       uuid.UUID `json:"upload_id"`
	FileName string    `json:"file_name"`
	Size     int       `json:"size"`
}

// DatasetInfo mirrors the original dashboard's "dataset information" panel.
type DatasetInfo struct {
	FileName    string   `json:"file_name"`
	SizeBytes   int      `json:"size_bytes"`
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	Columns     []string `json:"columns"`
	Encoding    string   `json:"encoding"`
}

type ColumnStatsResponse struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ColumnDefaults are the best-effort pre-selected columns and unit for the
// selectors, guessed from the header row.
type ColumnDefaults struct {
	TimeColumn   string `json:"time_column"`
	SignalColumn string `json:"signal_column"`
	TimeUnit     string `json:"time_unit"`
}

type PreviewResponse struct {
	Info     DatasetInfo           `json:"info"`
	Rows     [][]string            `json:"rows"`
	Stats    []ColumnStatsResponse `json:"stats"`
	Defaults ColumnDefaults        `json:"defaults"`
}
