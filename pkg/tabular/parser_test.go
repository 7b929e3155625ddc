package tabular

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseBasicCSV(t *testing.T) {
	raw := []byte("Tempo,Sinal\n0.0,0.0\n1.0,60.0\n2.0,0.0\n")

	ds, encoding, err := NewParser().Parse(raw, DelimiterComma)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if encoding != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", encoding)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"Tempo", "Sinal"}) {
		t.Errorf("Columns = %v", ds.Columns)
	}
	if ds.RowCount() != 3 {
		t.Errorf("RowCount = %d, want 3", ds.RowCount())
	}
}

func TestParseIsIdempotent(t *testing.T) {
	raw := []byte("time;signal\n1;2\n3;4\n")
	p := NewParser()

	first, _, err := p.Parse(raw, DelimiterSemicolon)
	if err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	second, _, err := p.Parse(raw, DelimiterSemicolon)
	if err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated parses of the same bytes differ")
	}
}

func TestParseLatin1Fallback(t *testing.T) {
	// "Intensidade" misspelled with a Latin-1 é (0xE9), invalid as UTF-8.
	raw := []byte("Tempo,Intensit\xe9\n1,2\n")

	ds, encoding, err := NewParser().Parse(raw, DelimiterComma)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if encoding != "latin-1" {
		t.Errorf("encoding = %q, want latin-1", encoding)
	}
	if ds.Columns[1] != "Intensité" {
		t.Errorf("second column = %q, want %q", ds.Columns[1], "Intensité")
	}
}

func TestParseWrongDelimiterSingleColumn(t *testing.T) {
	raw := []byte("Tempo;Sinal\n1;2\n")

	_, _, err := NewParser().Parse(raw, DelimiterComma)
	if !errors.Is(err, ErrColumnDetection) {
		t.Errorf("err = %v, want ErrColumnDetection", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty file", []byte("")},
		{"header only", []byte("Tempo,Sinal\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewParser().Parse(tt.raw, DelimiterComma)
			if !errors.Is(err, ErrNoData) {
				t.Errorf("err = %v, want ErrNoData", err)
			}
		})
	}
}

func TestParseSpaceDelimiter(t *testing.T) {
	raw := []byte("Tempo Sinal\n1.0 2.0\n3.0 4.0\n")

	ds, _, err := NewParser().Parse(raw, DelimiterSpace)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.ColumnCount() != 2 || ds.RowCount() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", ds.RowCount(), ds.ColumnCount())
	}
}

func TestResolveDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{",", DelimiterComma, false},
		{"comma", DelimiterComma, false},
		{";", DelimiterSemicolon, false},
		{"semicolon", DelimiterSemicolon, false},
		{"\t", DelimiterTab, false},
		{"tab", DelimiterTab, false},
		{" ", DelimiterSpace, false},
		{"space", DelimiterSpace, false},
		{"|", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ResolveDelimiter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveDelimiter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveDelimiter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFloat64ColumnNaNForNonNumeric(t *testing.T) {
	raw := []byte("Tempo,Sinal\n1.0,abc\n2.0,5\n")

	ds, _, err := NewParser().Parse(raw, DelimiterComma)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	values, ok := ds.Float64Column("Sinal")
	if !ok {
		t.Fatal("Sinal column missing")
	}
	if values[0] == values[0] { // NaN != NaN
		t.Errorf("values[0] = %v, want NaN", values[0])
	}
	if values[1] != 5 {
		t.Errorf("values[1] = %v, want 5", values[1])
	}
}
