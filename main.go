// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pngme/pngme/cmd/pngme"

func main() {
	cmd.Execute()
}
