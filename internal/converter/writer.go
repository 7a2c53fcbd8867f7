package converter

import (
	"bufio"
	"io"
	"runtime"
	"strings"
)

// QuotedWriter writes csv records with every field quoted, including
// numeric ones. encoding/csv only quotes fields that need it.
type QuotedWriter struct {
	w       *bufio.Writer
	UseCRLF bool
}

func NewQuotedWriter(w io.Writer) *QuotedWriter {
	return &QuotedWriter{
		w:       bufio.NewWriter(w),
		UseCRLF: runtime.GOOS == "windows",
	}
}

// Write writes one record. Embedded quotes are doubled.
func (qw *QuotedWriter) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			if err := qw.w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := qw.w.WriteByte('"'); err != nil {
			return err
		}
		if _, err := qw.w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if err := qw.w.WriteByte('"'); err != nil {
			return err
		}
	}

	if qw.UseCRLF {
		_, err := qw.w.WriteString("\r\n")
		return err
	}
	return qw.w.WriteByte('\n')
}

func (qw *QuotedWriter) Flush() error {
	return qw.w.Flush()
}
