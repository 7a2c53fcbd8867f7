package converter

import (
	"regexp"
	"strconv"

	"github.com/nconklindev/xlcombine/internal/types"
)

// integralPattern matches values like "1042.0": digits, a point, exactly one zero.
var integralPattern = regexp.MustCompile(`^[0-9]+\.0$`)

// IsIntegral reports whether s is an integer written with a single trailing ".0".
func IsIntegral(s string) bool {
	return integralPattern.MatchString(s)
}

// Normalize returns a copy of row where every cell whose text form matches
// IsIntegral is replaced by its truncated integer value.
func Normalize(row types.Row) types.Row {
	out := make(types.Row, len(row))
	for i, cell := range row {
		out[i] = normalizeCell(cell)
	}
	return out
}

func normalizeCell(cell types.Cell) types.Cell {
	s := cell.String()
	if !IsIntegral(s) {
		return cell
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return cell
	}
	return types.Integer(f)
}

// BlankValues returns a copy of row with text cells equal to any of values
// replaced by empty text.
func BlankValues(row types.Row, values []string) types.Row {
	if len(values) == 0 {
		return row
	}

	blank := make(map[string]bool, len(values))
	for _, v := range values {
		blank[v] = true
	}

	out := make(types.Row, len(row))
	for i, cell := range row {
		if cell.Kind == types.CellText && blank[cell.Text] {
			out[i] = types.Text("")
			continue
		}
		out[i] = cell
	}
	return out
}
