package types

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellInteger
)

// Cell is a single spreadsheet value. Number and Integer cells keep their
// value in Number; Integer cells are rendered without a fractional part.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func Text(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

func Integer(f float64) Cell {
	return Cell{Kind: CellInteger, Number: math.Trunc(f)}
}

// String returns the textual form of the cell. Numbers always carry a
// decimal point or an exponent, so 1042 renders as "1042.0".
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatNumber(c.Number)
	case CellInteger:
		return strconv.FormatFloat(c.Number, 'f', 0, 64)
	default:
		return c.Text
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Row is an ordered sequence of cells with positional meaning only.
type Row []Cell

// Strings renders every cell of the row as text.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// TextRow builds a row of text cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

type FileResult struct {
	InputFile    string
	Name         string
	RowsRead     int
	RowsExcluded int
	RowsWritten  int
}

type CombineResult struct {
	OutputFile     string
	FilesProcessed int
	RowsWritten    int
	Files          []FileResult
	Elapsed        time.Duration
}

// Progress is sent after each source file finishes.
type Progress struct {
	File  string
	Done  int
	Total int
}

func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}
