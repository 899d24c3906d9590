// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states, checkmarks, and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors, failures, and negative outcomes.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings, caution states, and attention-needed items.
	ColorWarning = lipgloss.Color("#F59E0B")
)

// Base styles - reusable lipgloss styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings and caution messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// stageReporter renders pipeline stage lines as colored markers:
// green + for success, red ✗ for failure, muted · for neutral notes.
type stageReporter struct {
	out io.Writer
}

func newStageReporter(out io.Writer) *stageReporter {
	return &stageReporter{out: out}
}

// Successf implements bootstrap.Reporter.
func (r *stageReporter) Successf(format string, args ...any) {
	fmt.Fprintln(r.out, SuccessStyle.Render("+"), fmt.Sprintf(format, args...))
}

// Failuref implements bootstrap.Reporter.
func (r *stageReporter) Failuref(format string, args ...any) {
	fmt.Fprintln(r.out, ErrorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

// Infof implements bootstrap.Reporter.
func (r *stageReporter) Infof(format string, args ...any) {
	fmt.Fprintln(r.out, SubtitleStyle.Render("·"), fmt.Sprintf(format, args...))
}
