// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/rolebook/rolebook/cmd/rolebook"

func main() {
	cmd.Execute()
}
