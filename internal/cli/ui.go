package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/noticegen/pkg/notices"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorGray   = lipgloss.Color("245") // Gray - labels
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printCount prints a labeled number.
func printCount(label string, n int64) {
	fmt.Println("  " + styleLabel.Render(label) + " " + StyleNumber.Render(fmt.Sprint(n)))
}

// =============================================================================
// Run Summary
// =============================================================================

// printSummary prints the library and license counts of a run.
func printSummary(s notices.Summary) {
	fmt.Println("  " + StyleDim.Render(summaryLine(s)))
	if n := s.Unresolved(); n > 0 {
		printWarning("%s; see the log and verify them manually", plural(n, "library has", "libraries have")+" no license")
	}
}

func summaryLine(s notices.Summary) string {
	return fmt.Sprintf("%s · %d resolved · %s",
		plural(s.Libraries, "library", "libraries"), s.Resolved, plural(s.Groups, "license", "licenses"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// printRunStats prints the counters collected by the observability hooks.
func printRunStats(s *runStats) {
	printDetail("Statistics")
	printCount("requests", s.requests.Load())
	printCount("http errors", s.httpErrors.Load())
	printCount("cache hits", s.cacheHits.Load())
	printCount("cache misses", s.cacheMisses.Load())
	printCount("not found", s.negative.Load())
	printCount("redirects", s.redirects.Load())
	printCount("redirect limit", s.redirectLimit.Load())
}
