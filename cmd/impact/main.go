// Command impact estimates asteroid impact effects from the terminal and
// browses the NASA NeoWs catalog.
//
// Usage:
//
//	impact estimate --diameter 370 --velocity 20 --lat 28.5 --lon -80.5
//	impact estimate --file scenario.yaml --json
//	impact neo get 3542519
//	impact neo feed --date 2026-10-19
package main

import (
	"os"

	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
)

func main() {
	a := newApp(os.Stdout, os.Stderr, observability.NewMetrics())
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
