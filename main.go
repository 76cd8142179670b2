// SPDX-License-Identifier: MPL-2.0

// texenv locates and drives a relocatable LaTeX toolchain installed under
// a prefix.
package main

import cmd "github.com/texenv/texenv/cmd/texenv"

func main() {
	cmd.Execute()
}
