// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for venvboot.
//
// ActionableError carries the failed operation, the resource involved and
// concrete suggestions for fixing the problem, so CLI handlers can render
// helpful messages instead of bare error strings. Construction goes through
// the fluent ErrorContext builder.
package issue
