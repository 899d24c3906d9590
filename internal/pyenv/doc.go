// SPDX-License-Identifier: MPL-2.0

// Package pyenv discovers a qualifying Python interpreter on PATH.
//
// Discovery walks an ordered candidate list (python3.13, python3.12, ...,
// python), queries each found binary for its version and accepts the first
// whose version satisfies the minimum threshold. The whole bootstrap is
// fatal when no candidate qualifies; everything downstream assumes the
// discovered interpreter.
package pyenv
