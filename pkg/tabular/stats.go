package tabular

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats are the basic describe() numbers for one numeric column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes per-column descriptive statistics over every column that
// has at least one numeric cell. Non-numeric cells are skipped, matching how
// the preview treats mixed columns.
func Describe(d *Dataset) []ColumnStats {
	out := make([]ColumnStats, 0, len(d.Columns))
	for _, col := range d.Columns {
		values, _ := d.Float64Column(col)
		clean := values[:0:0]
		for _, v := range values {
			if !math.IsNaN(v) {
				clean = append(clean, v)
			}
		}
		if len(clean) == 0 {
			continue
		}
		s := ColumnStats{
			Column: col,
			Count:  len(clean),
			Mean:   stat.Mean(clean, nil),
			Min:    floats.Min(clean),
			Max:    floats.Max(clean),
		}
		if len(clean) > 1 {
			s.Std = stat.StdDev(clean, nil)
		}
		out = append(out, s)
	}
	return out
}
