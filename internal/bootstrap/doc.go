// SPDX-License-Identifier: MPL-2.0

// Package bootstrap orchestrates the environment bootstrap pipeline.
//
// The pipeline is strictly sequential, each stage gating the next:
// interpreter discovery, environment provisioning, pip bootstrap,
// dependency installation, config seeding, launcher permission, post-setup
// hooks and finally the test run. Only discovery failure is fatal in its
// own right (exit 1); pip bootstrap and launcher permission are
// best-effort; installation, hooks and the test run propagate their exit
// codes as the process result.
package bootstrap
