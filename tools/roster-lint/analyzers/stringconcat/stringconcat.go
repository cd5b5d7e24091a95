// Package stringconcat detects quadratic string building in loops.
package stringconcat

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects `s += x` and `s = s + x` on strings inside loop bodies.
var Analyzer = &analysis.Analyzer{
	Name:     "stringconcat",
	Doc:      "detects O(n²) string concatenation patterns in loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
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
			assign, ok := n.(*ast.AssignStmt)
			if !ok || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
				return true
			}
			if !isStringType(pass, assign.Lhs[0]) {
				return true
			}

			if assign.Tok == token.ADD_ASSIGN || (assign.Tok == token.ASSIGN && appendsTo(assign.Lhs[0], assign.Rhs[0])) {
				pass.Reportf(assign.Pos(), "O(n²) string concatenation in loop - use strings.Builder or strings.Join")
			}
			return true
		})
	})

	return nil, nil
}

// appendsTo reports whether rhs is `lhs + ...`.
func appendsTo(lhs, rhs ast.Expr) bool {
	bin, ok := rhs.(*ast.BinaryExpr)
	if !ok || bin.Op != token.ADD {
		return false
	}
	for {
		left, ok := bin.X.(*ast.BinaryExpr)
		if !ok || left.Op != token.ADD {
			break
		}
		bin = left
	}
	return types.ExprString(bin.X) == types.ExprString(lhs)
}

// isStringType checks if the expression has string type.
func isStringType(pass *analysis.Pass, expr ast.Expr) bool {
	tv := pass.TypesInfo.TypeOf(expr)
	if tv == nil {
		return false
	}

	basic, ok := tv.Underlying().(*types.Basic)
	return ok && basic.Kind() == types.String
}
