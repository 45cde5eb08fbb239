// Package constlet rewrites every "const" declaration keyword to "let",
// a two-byte saving per declaration. This is the only pass that relaxes
// language semantics (the bindings lose their immutability), which is
// why the pipeline keeps it behind its own option.
package constlet

import "github.com/nqminh/niu/internal/js_ast"

// Rewrite mutates prog in place.
func Rewrite(prog *js_ast.Program) {
	var walkStmt func(*js_ast.Stmt)
	var walkExpr func(*js_ast.Expr)
	walkStmt = func(s *js_ast.Stmt) {
		if v, ok := s.Data.(*js_ast.SVar); ok && v.Kind == js_ast.DeclConst {
			v.Kind = js_ast.DeclLet
		}
		js_ast.WalkStmtChildren(s, walkStmt, walkExpr)
	}
	walkExpr = func(e *js_ast.Expr) {
		js_ast.WalkExprChildren(e, walkStmt, walkExpr)
	}
	for i := range prog.Body {
		walkStmt(&prog.Body[i])
	}
}
