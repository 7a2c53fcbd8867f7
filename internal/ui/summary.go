package ui

import (
	"fmt"
	"strings"

	"github.com/nconklindev/xlcombine/internal/types"

	"github.com/charmbracelet/lipgloss"
)

// RenderSummary formats the end-of-run report: file count and elapsed time.
func RenderSummary(result *types.CombineResult) string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Number of converted files: %d", result.FilesProcessed)))
	s.WriteString("\n")
	s.WriteString(field("Rows written", fmt.Sprintf("%d", result.RowsWritten)))
	s.WriteString(field("Output", result.OutputFile))
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("--- %.3f seconds ---", result.Elapsed.Seconds())))
	s.WriteString("\n")

	return s.String()
}

// RenderError formats a fatal error for the terminal.
func RenderError(err error) string {
	return ErrorStyle.Render("✗ Error") + " " + err.Error() + "\n"
}

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label+":"), ValueStyle.Render(value)) + "\n"
}
