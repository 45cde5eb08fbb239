package scope

import (
	"testing"

	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_ast"
	"github.com/nqminh/niu/internal/js_parser"
)

func analyze(t *testing.T, source string) *js_ast.Program {
	t.Helper()
	prog, err := js_parser.Parse(diag.NewLog(""), source)
	if err != nil {
		t.Fatalf("parse error in %q: %v", source, err)
	}
	Analyze(prog)
	return prog
}

func TestBindingsAndGlobals(t *testing.T) {
	prog := analyze(t, "var x=1;function f(y){return x+y}console.log(x)")
	root := prog.Scope

	x, ok := root.Bindings["x"]
	if !ok {
		t.Fatal("x must be bound in the program scope")
	}
	if len(x.References) != 2 {
		t.Fatalf("x must have 2 references, got %d", len(x.References))
	}
	if _, ok := root.Bindings["f"]; !ok {
		t.Fatal("f must be bound in the program scope")
	}
	if _, ok := root.Bindings["y"]; ok {
		t.Fatal("y must not leak into the program scope")
	}
	if uses := root.Globals["console"]; len(uses) != 1 {
		t.Fatalf("console must be a free global with 1 use, got %d", len(uses))
	}
	if _, ok := root.Globals["y"]; ok {
		t.Fatal("y resolves to the parameter, not a global")
	}
}

func TestVarHoisting(t *testing.T) {
	prog := analyze(t, "function f(){if(a){var v=1}return v}")
	root := prog.Scope

	fnScope := root.Children[0]
	if fnScope.Kind != js_ast.ScopeFunction {
		t.Fatalf("first child must be the function scope, got %v", fnScope.Kind)
	}
	v, ok := fnScope.Bindings["v"]
	if !ok {
		t.Fatal("var v must hoist to the function scope")
	}
	if len(v.References) != 1 {
		t.Fatalf("v must have 1 reference, got %d", len(v.References))
	}
}

func TestLexicalScoping(t *testing.T) {
	prog := analyze(t, "let a=1;{let a=2;b(a)}b(a)")
	root := prog.Scope

	outer := root.Bindings["a"]
	block := root.Children[0]
	inner := block.Bindings["a"]
	if outer == inner {
		t.Fatal("block-scoped a must be a distinct binding")
	}
	if len(inner.References) != 1 || len(outer.References) != 1 {
		t.Fatalf("each a must be read once, got inner=%d outer=%d",
			len(inner.References), len(outer.References))
	}
}

func TestViolations(t *testing.T) {
	prog := analyze(t, "let n=0;n=1;n+=2;n++;f(n)")
	n := prog.Scope.Bindings["n"]
	if len(n.Violations) != 3 {
		t.Fatalf("n must have 3 writes, got %d", len(n.Violations))
	}
	if len(n.References) != 1 {
		t.Fatalf("n must have 1 read, got %d", len(n.References))
	}
}

func TestUseScopesTracksReferenceSites(t *testing.T) {
	prog := analyze(t, "let u=1;function f(){return u}")
	u := prog.Scope.Bindings["u"]
	if len(u.UseScopes) != 1 {
		t.Fatalf("u must record 1 use scope, got %d", len(u.UseScopes))
	}
	if u.UseScopes[0].Kind != js_ast.ScopeFunction {
		t.Fatal("u's use must be recorded in the function scope")
	}
}

func TestCatchAndImports(t *testing.T) {
	prog := analyze(t, "import {a as b} from \"m\";try{b()}catch(e){g(e)}")
	root := prog.Scope

	if _, ok := root.Bindings["b"]; !ok {
		t.Fatal("import local must be bound in the program scope")
	}
	var catchScope *js_ast.Scope
	for _, child := range root.Children {
		if child.Kind == js_ast.ScopeCatch {
			catchScope = child
		}
	}
	if catchScope == nil {
		t.Fatal("catch clause must open its own scope")
	}
	e := catchScope.Bindings["e"]
	if e == nil || len(e.References) != 1 {
		t.Fatal("catch binding must capture its single use")
	}
}

func TestNamedFunctionExpression(t *testing.T) {
	prog := analyze(t, "x=function f(){return f}")
	root := prog.Scope
	if _, ok := root.Bindings["f"]; ok {
		t.Fatal("a function expression name must not bind in the outer scope")
	}
	if _, ok := root.Globals["f"]; ok {
		t.Fatal("the inner f resolves to the function's own name, not a global")
	}
}
