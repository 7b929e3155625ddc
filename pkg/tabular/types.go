package tabular

import (
	"math"
	"strconv"
	"strings"
)

// Dataset is an in-memory table: ordered named columns over raw text cells.
// Cells are kept as text so the preview shows the file as uploaded; numeric
// views are derived on demand via Float64Column.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of a named column, or -1 if absent.
// Matching is exact (case-sensitive), same as the header row.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Float64Column extracts a column as float64 values. Cells that do not parse
// as numbers become NaN rather than failing the whole column.
func (d *Dataset) Float64Column(name string) ([]float64, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = parseCell(row[idx])
	}
	return out, true
}

// Head returns a view-copy of the first n rows (all rows when n exceeds the
// row count). The returned dataset shares no row slices with the original.
func (d *Dataset) Head(n int) *Dataset {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	if n < 0 {
		n = 0
	}
	head := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]string, n),
	}
	for i := 0; i < n; i++ {
		head.Rows[i] = append([]string(nil), d.Rows[i]...)
	}
	return head
}

// Copy deep-copies the dataset.
func (d *Dataset) Copy() *Dataset {
	return d.Head(len(d.Rows))
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
