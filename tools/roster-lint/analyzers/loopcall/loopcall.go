// Package loopcall detects per-item store and resolver calls inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects calls inside loops that should happen once per run.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects store and resolver calls inside loops that should run once per batch",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// batchMethods take or return a whole batch. Calling them per item
// re-reads the directory or re-profiles it for every entry.
var batchMethods = map[string]string{
	// StaffDirectory
	"ListStaff":   "load the directory once before the loop",
	"SaveStaff":   "collect records and save them in one call",
	"StaffExists": "pass every ID in one call",
	// AssignmentStore
	"ReplaceAssignments": "build all assignments, then replace once",
	// Resolver
	"Resolve": "pass every entry in one call so the directory is profiled once",
	"Rank":    "resolve the batch instead of ranking per name",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Goroutines started per item are fan-out, not repeated calls.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if hint, ok := batchMethods[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(), "potential N+1: %s called inside loop - %s", sel.Sel.Name, hint)
			}

			return true
		})
	})

	return nil, nil
}
