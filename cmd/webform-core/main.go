// Command webform-core is a small standalone harness for the web-form
// brute-forcing core. It is not the host framework the module is
// designed to run under (Medusa); it exists only so the core can be
// built, run, and demonstrated end to end without one, the way a unit
// test harness stands in for a production caller.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
