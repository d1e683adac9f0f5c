// Package main provides the CLI entrypoint for reflex.
//
// reflex exercises the library from the command line:
//   - convert converts a text value to a primitive type
//   - synth synthesizes an object from a YAML mapping
//   - explain shows how the members of one mapping would be copied onto another
package main

import (
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
