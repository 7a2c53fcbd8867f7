package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FileDate derives a yyyy-mm-dd date from names shaped like a_b_mmddyy, where
// the third underscore separated field starts with month, day and a two digit
// year in the 2000s. Anything after those six digits is ignored.
func FileDate(name string) (string, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 || len(parts[2]) < 6 {
		return "", fmt.Errorf("%w: %q", ErrNoFileDate, name)
	}

	stamp := parts[2]
	month, errM := strconv.Atoi(stamp[0:2])
	day, errD := strconv.Atoi(stamp[2:4])
	year, errY := strconv.Atoi(stamp[4:6])
	if errM != nil || errD != nil || errY != nil {
		return "", fmt.Errorf("%w: %q", ErrNoFileDate, name)
	}

	t := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return "", fmt.Errorf("%w: %q has invalid date %s", ErrNoFileDate, name, stamp[0:6])
	}
	return t.Format(time.DateOnly), nil
}
