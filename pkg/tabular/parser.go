package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Parse errors the caller is expected to branch on.
var (
	ErrNoData          = errors.New("file contains no data rows")
	ErrColumnDetection = errors.New("fewer than two columns detected")
)

// Known delimiters, mirroring the upload form options.
const (
	DelimiterComma     = ','
	DelimiterSemicolon = ';'
	DelimiterTab       = '\t'
	DelimiterSpace     = ' '
)

// ResolveDelimiter maps a request value to a delimiter rune. Both the literal
// character and a spelled-out name are accepted.
func ResolveDelimiter(s string) (rune, error) {
	switch s {
	case ",", "comma":
		return DelimiterComma, nil
	case ";", "semicolon":
		return DelimiterSemicolon, nil
	case "\t", "tab":
		return DelimiterTab, nil
	case " ", "space":
		return DelimiterSpace, nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q", s)
}

// Parser turns raw uploaded bytes into a Dataset. It is stateless and pure:
// the same bytes with the same delimiter always produce the same dataset, so
// callers may re-parse per interaction without caching parsed results.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the raw bytes (UTF-8 first, Latin-1 fallback) and reads them
// as delimiter-separated values with a header row. It returns the dataset and
// the name of the encoding that was used.
func (p *Parser) Parse(raw []byte, delimiter rune) (*Dataset, string, error) {
	text, encoding := decode(raw)

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = delimiter
	r.LazyQuotes = true
	// Leading-space trimming fights a space delimiter.
	r.TrimLeadingSpace = delimiter != DelimiterSpace

	header, err := r.Read()
	if err == io.EOF {
		return nil, encoding, ErrNoData
	}
	if err != nil {
		return nil, encoding, fmt.Errorf("failed to read header row: %w", err)
	}
	if len(header) < 2 {
		return nil, encoding, ErrColumnDetection
	}

	rows := make([][]string, 0, 64)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, encoding, fmt.Errorf("failed to read data row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, encoding, ErrNoData
	}

	return &Dataset{Columns: header, Rows: rows}, encoding, nil
}

// decode returns UTF-8 text for the raw bytes. Instrument exports are often
// Latin-1, so invalid UTF-8 falls back to an ISO 8859-1 decode, which accepts
// every byte value.
func decode(raw []byte) ([]byte, string) {
	if utf8.Valid(raw) {
		return raw, "utf-8"
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO 8859-1 maps all 256 byte values; keep the raw bytes if the
		// decoder surprises us anyway.
		return raw, "utf-8"
	}
	return decoded, "latin-1"
}
