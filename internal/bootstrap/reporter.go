// SPDX-License-Identifier: MPL-2.0

package bootstrap

import "fmt"

// Reporter receives one line per pipeline stage. The CLI renders these as
// colored `+` / `✗` markers; tests record them.
type Reporter interface {
	// Successf reports a completed stage.
	Successf(format string, args ...any)
	// Failuref reports a failed stage.
	Failuref(format string, args ...any)
	// Infof reports a neutral note (e.g. a best-effort stage that was
	// skipped).
	Infof(format string, args ...any)
}

// NopReporter discards all stage output.
type NopReporter struct{}

// Successf implements Reporter.
func (NopReporter) Successf(string, ...any) {}

// Failuref implements Reporter.
func (NopReporter) Failuref(string, ...any) {}

// Infof implements Reporter.
func (NopReporter) Infof(string, ...any) {}

// RecordingReporter captures stage lines for assertions in tests.
type RecordingReporter struct {
	Successes []string
	Failures  []string
	Infos     []string
}

// Successf implements Reporter.
func (r *RecordingReporter) Successf(format string, args ...any) {
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}

// Failuref implements Reporter.
func (r *RecordingReporter) Failuref(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Infof implements Reporter.
func (r *RecordingReporter) Infof(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}
