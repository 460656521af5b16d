// Command gwasview renders and serves pannable Manhattan plots of
// genome-wide association results.
//
// Usage:
//
//	gwasview render --coords grch38.json --data gwas.json -o plot.png
//	gwasview serve  --coords grch38.json --data gwas.json --addr :8080
//
// Every flag can also be set in a settings file (--config) or through
// GWAS_* environment variables, e.g. GWAS_LAYOUT_PADDING.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
