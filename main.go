// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "typedump/cmd/typedump"
)

func main() {
	cmd.Execute()
}
