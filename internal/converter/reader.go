package converter

import (
	"strconv"

	"github.com/nconklindev/xlcombine/internal/types"

	"github.com/xuri/excelize/v2"
)

const firstSheetIndex = 0

var rawValues = excelize.Options{RawCellValue: true}

// RowReader streams rows from the first sheet of a workbook. It follows the
// excelize iterator shape: call Next until it returns false, then check Err.
// Each reader is single-pass; open a new one to read the file again.
type RowReader struct {
	path  string
	file  *excelize.File
	sheet string
	rows  *excelize.Rows
	width int
	skip  int
	line  int
	row   types.Row
	err   error
}

// OpenRows opens path and positions the reader so the first row returned is
// the one at ordinal skip (0-based). Skipping past the end yields no rows.
func OpenRows(path string, skip int) (*RowReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SourceOpenError{Path: path, Err: err}
	}

	sheet := f.GetSheetName(firstSheetIndex)
	if sheet == "" {
		f.Close()
		return nil, &SourceOpenError{Path: path, Err: ErrNoSheets}
	}

	width, err := sheetWidth(f, sheet)
	if err != nil {
		f.Close()
		return nil, &SourceOpenError{Path: path, Err: err}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, &SourceOpenError{Path: path, Err: err}
	}

	return &RowReader{
		path:  path,
		file:  f,
		sheet: sheet,
		rows:  rows,
		width: width,
		skip:  max(skip, 0),
	}, nil
}

// sheetWidth returns the length of the widest row in the sheet.
func sheetWidth(f *excelize.File, sheet string) (int, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	width := 0
	for rows.Next() {
		cols, err := rows.Columns(rawValues)
		if err != nil {
			return 0, err
		}
		width = max(width, len(cols))
	}
	return width, rows.Error()
}

// Next advances to the next row past the skip offset.
func (r *RowReader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.rows.Next() {
		r.line++
		if r.line <= r.skip {
			continue
		}

		cols, err := r.rows.Columns(rawValues)
		if err != nil {
			r.err = &SourceOpenError{Path: r.path, Err: err}
			return false
		}

		row, err := r.buildRow(cols)
		if err != nil {
			r.err = &SourceOpenError{Path: r.path, Err: err}
			return false
		}
		r.row = row
		return true
	}

	if err := r.rows.Error(); err != nil {
		r.err = &SourceOpenError{Path: r.path, Err: err}
	}
	return false
}

// buildRow types each raw value and pads the row to the sheet width so every
// row of a sheet has the same number of cells.
func (r *RowReader) buildRow(cols []string) (types.Row, error) {
	row := make(types.Row, max(r.width, len(cols)))
	for i := range row {
		if i >= len(cols) || cols[i] == "" {
			row[i] = types.Text("")
			continue
		}

		axis, err := excelize.CoordinatesToCellName(i+1, r.line)
		if err != nil {
			return nil, err
		}
		cellType, err := r.file.GetCellType(r.sheet, axis)
		if err != nil {
			return nil, err
		}
		row[i] = typedCell(cellType, cols[i])
	}
	return row, nil
}

// typedCell keeps numbers numeric. Cells without an explicit type attribute
// are numeric in the file format when they carry a value.
func typedCell(cellType excelize.CellType, raw string) types.Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return types.Number(f)
		}
	}
	return types.Text(raw)
}

// Row returns the current row.
func (r *RowReader) Row() types.Row {
	return r.row
}

// Line returns the 1-based sheet row number of the current row.
func (r *RowReader) Line() int {
	return r.line
}

func (r *RowReader) Err() error {
	return r.err
}

// Close releases the iterator and the workbook.
func (r *RowReader) Close() error {
	rowsErr := r.rows.Close()
	if err := r.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
