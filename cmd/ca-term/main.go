// Command ca-term runs cellular automata in a terminal.
package main

import (
	"os"

	_ "immigration-ca/pkg/sims/briansbrain"
	_ "immigration-ca/pkg/sims/immigration"
	_ "immigration-ca/pkg/sims/life"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
