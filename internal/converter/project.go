package converter

import "github.com/nconklindev/xlcombine/internal/types"

// DropColumn returns a new row without the cell at index.
func DropColumn(row types.Row, index int) (types.Row, error) {
	return DropColumns(row, index)
}

// DropColumns returns a new row without the cells at the given indices,
// keeping the remaining cells in order. Duplicate indices are ignored.
func DropColumns(row types.Row, indices ...int) (types.Row, error) {
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(row) {
			return nil, columnError(idx, len(row))
		}
		drop[idx] = true
	}

	out := make(types.Row, 0, len(row)-len(drop))
	for i, cell := range row {
		if !drop[i] {
			out = append(out, cell)
		}
	}
	return out, nil
}
