// Command pgfraggen introspects a PostgreSQL catalog and emits the
// per-table Go shapes consumed by callers of the pgfrag package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
