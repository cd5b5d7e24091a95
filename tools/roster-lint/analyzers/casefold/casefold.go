// Package casefold flags name case folding done outside the matching package.
//
// strings.ToUpper maps "i" to "I" and leaves "ı" alone, so Turkish names
// folded that way never meet their directory spelling. Names are compared
// through matching.Normalizer instead.
package casefold

import (
	"go/ast"
	"go/types"
	"path"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports strings.ToUpper and strings.EqualFold calls outside
// packages named "matching".
var Analyzer = &analysis.Analyzer{
	Name:     "casefold",
	Doc:      "reports case folding of names outside the matching package",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var flagged = map[string]string{
	"ToUpper":   "strings.ToUpper",
	"EqualFold": "strings.EqualFold",
}

func run(pass *analysis.Pass) (interface{}, error) {
	if path.Base(pass.Pkg.Path()) == "matching" {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}

		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "strings" {
			return
		}

		if name, ok := flagged[fn.Name()]; ok {
			pass.Reportf(call.Pos(), "%s does not fold Turkish letters - compare names via matching.Normalizer", name)
		}
	})

	return nil, nil
}
