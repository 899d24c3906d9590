// SPDX-License-Identifier: MPL-2.0

// Package venv manages the project's isolated Python environment.
//
// Provisioning is self-healing: an environment directory that exists but
// lacks its interpreter binary is treated as a leftover from an interrupted
// run, deleted recursively and recreated. A valid environment is never
// rebuilt.
//
// Pip bootstrap is best-effort by design: ensurepip first, then the get-pip
// script fetched over HTTPS and piped into the venv interpreter. Neither
// failure aborts the run; if pip never materializes the dependency
// installation stage fails naturally with its own exit status.
package venv
