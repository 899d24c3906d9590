// SPDX-License-Identifier: MPL-2.0

// Package execx provides the blocking process-execution layer for venvboot.
//
// Every external invocation the bootstrapper makes (interpreter version
// queries, venv creation, pip, pytest, the get-pip fallback) goes through
// Runner, which wraps exec.CommandContext with working-directory, extra-env,
// stdin-piping and output-capture handling and reports outcomes as Result
// values instead of raw errors.
//
// Snippet execution for post-setup hooks uses an embedded POSIX shell
// interpreter (mvdan/sh) via RunSnippet, so hooks behave identically across
// hosts regardless of the system shell.
package execx
