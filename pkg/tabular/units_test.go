package tabular

import (
	"math"
	"testing"
)

func timeDataset(values ...string) *Dataset {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v, "1.0"}
	}
	return &Dataset{Columns: []string{"Tempo", "Sinal"}, Rows: rows}
}

func TestNormalizeTimeColumn(t *testing.T) {
	tests := []struct {
		name           string
		unit           string
		input          []string
		want           []float64
		wantRecognized bool
	}{
		{
			name:           "seconds divide by 60",
			unit:           UnitSeconds,
			input:          []string{"0.0", "1.0", "2.0"},
			want:           []float64{0, 1.0 / 60, 2.0 / 60},
			wantRecognized: true,
		},
		{
			name:           "milliseconds divide by 60000",
			unit:           UnitMilliseconds,
			input:          []string{"60000", "120000"},
			want:           []float64{1, 2},
			wantRecognized: true,
		},
		{
			name:           "millisecond alias spelling accepted",
			unit:           UnitMillisecondsAlias,
			input:          []string{"60000"},
			want:           []float64{1},
			wantRecognized: true,
		},
		{
			name:           "minutes pass through",
			unit:           UnitMinutes,
			input:          []string{"0.5", "1.5"},
			want:           []float64{0.5, 1.5},
			wantRecognized: true,
		},
		{
			name:           "unknown unit leaves values untouched",
			unit:           "Horas",
			input:          []string{"30", "90"},
			want:           []float64{30, 90},
			wantRecognized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := timeDataset(tt.input...)
			out, recognized := NormalizeTimeColumn(ds, "Tempo", tt.unit)

			if recognized != tt.wantRecognized {
				t.Errorf("recognized = %v, want %v", recognized, tt.wantRecognized)
			}

			got, ok := out.Float64Column("Tempo")
			if !ok {
				t.Fatal("Tempo column missing from normalized dataset")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("row count = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("row %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeTimeColumnDoesNotMutateInput(t *testing.T) {
	ds := timeDataset("60", "120")
	NormalizeTimeColumn(ds, "Tempo", UnitSeconds)

	original, _ := ds.Float64Column("Tempo")
	if original[0] != 60 || original[1] != 120 {
		t.Errorf("input dataset was mutated: %v", original)
	}
}

func TestNormalizeTimeColumnSkipsNonNumericCells(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"Tempo", "Sinal"},
		Rows:    [][]string{{"60", "1"}, {"n/a", "2"}},
	}
	out, _ := NormalizeTimeColumn(ds, "Tempo", UnitSeconds)

	if out.Rows[0][0] != "1" {
		t.Errorf("numeric cell = %q, want %q", out.Rows[0][0], "1")
	}
	if out.Rows[1][0] != "n/a" {
		t.Errorf("non-numeric cell = %q, want untouched %q", out.Rows[1][0], "n/a")
	}
}

func TestNormalizeTimeColumnMissingColumn(t *testing.T) {
	ds := timeDataset("60")
	out, recognized := NormalizeTimeColumn(ds, "NoSuchColumn", UnitSeconds)

	if !recognized {
		t.Error("unit should still be recognized when the column is absent")
	}
	got, _ := out.Float64Column("Tempo")
	if got[0] != 60 {
		t.Errorf("other columns must stay untouched, got %v", got[0])
	}
}
