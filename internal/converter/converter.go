package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nconklindev/xlcombine/internal/logging"
	"github.com/nconklindev/xlcombine/internal/types"
)

const DefaultOutputName = "combined_file.csv"

// Options configures a combine run. Zero values fall back to the defaults
// for Extension, OutputName and Order.
type Options struct {
	Dir         string
	SkipRows    int
	DropColumns []int
	OutputName  string
	Extension   string
	Order       Order
	StampDate   bool
	BlankValues []string
	Logger      *slog.Logger
	// Progress, when set, receives one update per finished file. Sends never
	// block; updates are dropped if the receiver is not ready.
	Progress chan<- types.Progress
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Order == "" {
		o.Order = OrderName
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}

// Combine converts every spreadsheet in opts.Dir into rows of a single quoted
// csv file written to the same directory. Any error aborts the run; the
// output may then be left incomplete.
func Combine(opts Options) (*types.CombineResult, error) {
	start := time.Now()
	opts = opts.withDefaults()
	log := opts.Logger

	files, err := Discover(opts.Dir, opts.Extension, opts.Order)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", opts.Dir, err)
	}
	log.Info("discovered source files", "dir", opts.Dir, "count", len(files), "order", string(opts.Order))

	outputFile := filepath.Join(opts.Dir, opts.OutputName)
	out, err := os.Create(outputFile)
	if err != nil {
		return nil, &OutputCreateError{Path: outputFile, Err: err}
	}
	defer out.Close()

	writer := NewQuotedWriter(out)
	result := &types.CombineResult{OutputFile: outputFile}

	for i, file := range files {
		if file == outputFile {
			continue
		}

		fileResult, err := combineFile(file, opts, writer)
		if err != nil {
			return nil, err
		}

		result.Files = append(result.Files, *fileResult)
		result.FilesProcessed++
		result.RowsWritten += fileResult.RowsWritten
		log.Info("converted file",
			"file", fileResult.Name,
			"rows_read", fileResult.RowsRead,
			"rows_excluded", fileResult.RowsExcluded,
			"rows_written", fileResult.RowsWritten)

		if opts.Progress != nil {
			select {
			case opts.Progress <- types.Progress{File: fileResult.Name, Done: i + 1, Total: len(files)}:
			default:
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return nil, &OutputCreateError{Path: outputFile, Err: err}
	}
	if err := out.Close(); err != nil {
		return nil, &OutputCreateError{Path: outputFile, Err: err}
	}

	result.Elapsed = time.Since(start)
	log.Info("combined files", "output", outputFile, "files", result.FilesProcessed, "rows", result.RowsWritten)
	return result, nil
}

// combineFile streams one source through filter, projection, blanking and
// normalization into writer.
func combineFile(path string, opts Options, writer *QuotedWriter) (*types.FileResult, error) {
	name := UnqualifiedName(path, opts.Extension)
	log := opts.Logger.With("file", name)
	log.Debug("processing file", "path", path)

	var stamp string
	if opts.StampDate {
		date, err := FileDate(name)
		if err != nil {
			return nil, err
		}
		stamp = date
	}

	reader, err := OpenRows(path, opts.SkipRows)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	result := &types.FileResult{InputFile: path, Name: name}
	for reader.Next() {
		result.RowsRead++
		row := reader.Row()

		garbage, err := isGarbage(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, reader.Line(), err)
		}
		if garbage {
			result.RowsExcluded++
			log.Debug("excluded row", "line", reader.Line())
			continue
		}

		row, err = DropColumns(row, opts.DropColumns...)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, reader.Line(), err)
		}
		row = Normalize(BlankValues(row, opts.BlankValues))
		if opts.StampDate {
			row = append(types.Row{types.Text(stamp)}, row...)
		}

		if err := writer.Write(row.Strings()); err != nil {
			return nil, &OutputCreateError{Path: filepath.Join(opts.Dir, opts.OutputName), Err: err}
		}
		result.RowsWritten++
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
