package converter

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nconklindev/xlcombine/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to the first sheet of a new workbook at dir/name.
func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func reportRows(product string) [][]any {
	return [][]any{
		{"Weekly Sales Report"},
		{"Generated for store 12"},
		{"Product", "Units", "Amount"},
		{"Total", "x", "y"},
		{product, "10.0", "42.0"},
		{"", "orphan", "row"},
		{product + "-n", 7, 99},
	}
}

func eol() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCombineTwoFiles(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "a_report.xlsx", reportRows("P1"))
	writeWorkbook(t, dir, "b_report.xlsx", reportRows("P2"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o755))

	result, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesProcessed)
	assert.Equal(t, 4, result.RowsWritten)
	assert.Equal(t, filepath.Join(dir, DefaultOutputName), result.OutputFile)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "a_report", result.Files[0].Name)
	assert.Equal(t, 4, result.Files[0].RowsRead)
	assert.Equal(t, 2, result.Files[0].RowsExcluded)

	expected := strings.Join([]string{
		`"P1","42"`,
		`"P1-n","99"`,
		`"P2","42"`,
		`"P2-n","99"`,
	}, eol()) + eol()
	assert.Equal(t, expected, readOutput(t, result.OutputFile))
}

func TestCombineIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "b.xlsx", reportRows("B"))
	writeWorkbook(t, dir, "a.xlsx", reportRows("A"))

	first, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}})
	require.NoError(t, err)
	firstOutput := readOutput(t, first.OutputFile)

	second, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}})
	require.NoError(t, err)

	assert.Equal(t, firstOutput, readOutput(t, second.OutputFile))
	assert.True(t, strings.HasPrefix(firstOutput, `"A","42"`))
}

func TestCombineNoSources(t *testing.T) {
	dir := t.TempDir()
	outputFile := filepath.Join(dir, DefaultOutputName)
	require.NoError(t, os.WriteFile(outputFile, []byte("stale content\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upper.XLSX"), []byte("not matched"), 0o644))

	result, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}})
	require.NoError(t, err)

	assert.Equal(t, 0, result.FilesProcessed)
	assert.Empty(t, readOutput(t, outputFile))
}

func TestCombineCorruptSourceAborts(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "a.xlsx", reportRows("A"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xlsx"), []byte("definitely not a zip"), 0o644))

	result, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}})
	require.Error(t, err)
	assert.Nil(t, result)

	var openErr *SourceOpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), openErr.Path)
}

func TestCombineOutputCreateError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultOutputName), 0o755))

	_, err := Combine(Options{Dir: dir, SkipRows: 0, DropColumns: []int{0}})

	var createErr *OutputCreateError
	require.ErrorAs(t, err, &createErr)
}

func TestCombineColumnOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "a.xlsx", reportRows("A"))

	_, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{5}})
	require.ErrorIs(t, err, ErrColumnOutOfRange)
}

func TestCombineSkipPastEnd(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "a.xlsx", reportRows("A"))

	result, err := Combine(Options{Dir: dir, SkipRows: 100, DropColumns: []int{1}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Equal(t, 0, result.RowsWritten)
	assert.Empty(t, readOutput(t, result.OutputFile))
}

func TestCombineStampDateAndBlankValues(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "sns_sales_032019.xlsx", [][]any{
		{"Product", "Description", "Units"},
		{"P1", "Widget", "—"},
		{"P2", "Gadget", "3.0"},
	})

	result, err := Combine(Options{
		Dir:         dir,
		SkipRows:    1,
		DropColumns: []int{1},
		StampDate:   true,
		BlankValues: []string{"—"},
		OutputName:  "out.csv",
	})
	require.NoError(t, err)

	expected := `"2019-03-20","P1",""` + eol() + `"2019-03-20","P2","3"` + eol()
	assert.Equal(t, expected, readOutput(t, filepath.Join(dir, "out.csv")))
	assert.Equal(t, 1, result.FilesProcessed)
}

func TestCombineStampDateRequiresDatedName(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "report.xlsx", reportRows("A"))

	_, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}, StampDate: true})
	require.ErrorIs(t, err, ErrNoFileDate)
}

func TestCombineReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, dir, "a.xlsx", reportRows("A"))
	writeWorkbook(t, dir, "b.xlsx", reportRows("B"))

	progress := make(chan types.Progress, 4)
	_, err := Combine(Options{Dir: dir, SkipRows: 3, DropColumns: []int{1}, Progress: progress})
	require.NoError(t, err)
	close(progress)

	var updates []types.Progress
	for p := range progress {
		updates = append(updates, p)
	}
	require.Len(t, updates, 2)
	assert.Equal(t, types.Progress{File: "b", Done: 2, Total: 2}, updates[1])
	assert.InDelta(t, 1.0, updates[1].Fraction(), 1e-9)
}

func TestDiscoverListingOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.xlsx", "a.xlsx", "b.xlsx", "a.xls", "d.xlsx.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	listed, err := Discover(dir, DefaultExtension, OrderListing)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "c.xlsx"),
	}, listed)

	sorted, err := Discover(dir, DefaultExtension, OrderName)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "c.xlsx"),
	}, sorted)
}

func TestUnqualifiedName(t *testing.T) {
	assert.Equal(t, "sns_sales_032019", UnqualifiedName("/data/sns_sales_032019.xlsx", ".xlsx"))
}
