// Command hypotcts runs the hypot kernel conformance suite on the host
// runtime and reports every lane outside the precision budget.
package main

import (
	"os"

	"github.com/ajroetker/rshwy/cmd/hypotcts/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
