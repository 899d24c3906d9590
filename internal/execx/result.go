// SPDX-License-Identifier: MPL-2.0

package execx

// Result is the outcome of a single external invocation.
type Result struct {
	// ExitCode is the process exit status (0 on success).
	ExitCode ExitCode
	// Output is captured stdout (empty when stdio was inherited).
	Output string
	// ErrOutput is captured stderr (empty when stdio was inherited).
	ErrOutput string
	// Error is set only for infrastructure failures (command not found,
	// context canceled), never for ordinary non-zero exits.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Ok reports whether the invocation completed with exit code 0 and no
// infrastructure failure.
func (r *Result) Ok() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
