// SPDX-License-Identifier: MPL-2.0

// venvboot bootstraps a Python project's development environment.
package main

import cmd "venvboot-cli/cmd/venvboot"

func main() {
	cmd.Execute()
}
