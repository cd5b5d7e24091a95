// roster-lint is a custom static analyzer for roster-resolve code patterns.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/roster-resolve/tools/roster-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
