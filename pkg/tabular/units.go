package tabular

import "math"

// Time unit labels as shown on the dashboard. Milissegundos is canonical; the
// single-s spelling survived in older clients and stays accepted.
const (
	UnitSeconds           = "Segundos"
	UnitMinutes           = "Minutos"
	UnitMilliseconds      = "Milissegundos"
	UnitMillisecondsAlias = "Milisegundos"
)

// divisor to convert a value of the given unit into minutes.
func divisor(unit string) (float64, bool) {
	switch unit {
	case UnitSeconds:
		return 60, true
	case UnitMilliseconds, UnitMillisecondsAlias:
		return 60000, true
	case UnitMinutes:
		return 1, true
	}
	return 0, false
}

// NormalizeTimeColumn returns a copy of the dataset with the named column
// rescaled to minutes. The second return reports whether the unit label was
// recognized; an unknown unit leaves the data untouched so the caller can warn
// instead of failing. The input dataset is never modified.
func NormalizeTimeColumn(d *Dataset, column, unit string) (*Dataset, bool) {
	out := d.Copy()

	div, ok := divisor(unit)
	if !ok {
		return out, false
	}
	if div == 1 {
		return out, true
	}

	idx := out.ColumnIndex(column)
	if idx < 0 {
		return out, true
	}
	for _, row := range out.Rows {
		v := parseCell(row[idx])
		if math.IsNaN(v) {
			continue
		}
		row[idx] = formatCell(v / div)
	}
	return out, true
}
