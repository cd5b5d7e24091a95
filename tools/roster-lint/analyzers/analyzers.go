// Package analyzers provides all custom static analyzers for roster-resolve.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/roster-resolve/tools/roster-lint/analyzers/casefold"
	"github.com/ersonp/roster-resolve/tools/roster-lint/analyzers/loopcall"
	"github.com/ersonp/roster-resolve/tools/roster-lint/analyzers/stringconcat"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		casefold.Analyzer,
		loopcall.Analyzer,
		stringconcat.Analyzer,
	}
}
