package converter

import "github.com/nconklindev/xlcombine/internal/types"

// Garbage markers checked against column 0 of every row.
const (
	TotalMarker = "Total"
	EmptyMarker = ""
)

var garbageMarkers = []string{TotalMarker, EmptyMarker}

// IsExcluded reports whether the cell at index is a text cell equal to marker.
// Numeric cells never match.
func IsExcluded(row types.Row, index int, marker string) (bool, error) {
	if index < 0 || index >= len(row) {
		return false, columnError(index, len(row))
	}

	cell := row[index]
	return cell.Kind == types.CellText && cell.Text == marker, nil
}

// isGarbage checks every garbage marker against column 0.
func isGarbage(row types.Row) (bool, error) {
	for _, marker := range garbageMarkers {
		excluded, err := IsExcluded(row, 0, marker)
		if err != nil || excluded {
			return excluded, err
		}
	}
	return false, nil
}
