// Package globalhoist lifts frequently dot-accessed free globals
// ("Math.max", "Array.isArray") into short local bindings. A single walk
// classifies every identifier occurrence; candidates are admitted only
// when the byte accounting comes out ahead and when binding the name
// early cannot change behavior: any name that appears under a typeof
// anywhere in the program is left alone, since "typeof G" is safe on an
// undefined G while "const x=G" would throw.
package globalhoist

import (
	"fmt"
	"sort"

	"github.com/nqminh/niu/internal/costmodel"
	"github.com/nqminh/niu/internal/js_ast"
)

// PlaceholderPrefix starts every name this pass introduces. The mangler
// replaces these with short names after the re-parse.
const PlaceholderPrefix = "__niu_global_"

// Names that can be the object of a dot access but must never be
// rebound. "import" is here because "import.meta" is syntax, not a
// global.
var excluded = map[string]bool{
	"arguments": true,
	"this":      true,
	"super":     true,
	"undefined": true,
	"NaN":       true,
	"Infinity":  true,
	"null":      true,
	"true":      true,
	"false":     true,
	"import":    true,
}

// Hoist rewrites prog in place. It requires scope analysis to have run.
func Hoist(prog *js_ast.Program) {
	if prog.Scope == nil || len(prog.Scope.Globals) == 0 {
		return
	}

	c := &collector{
		dotUses:       map[string][]*js_ast.Ident{},
		typeofGuarded: map[string]bool{},
	}
	var walkStmt func(*js_ast.Stmt)
	var walkExpr func(*js_ast.Expr)
	walkStmt = func(s *js_ast.Stmt) {
		js_ast.WalkStmtChildren(s, walkStmt, walkExpr)
	}
	walkExpr = func(e *js_ast.Expr) {
		switch n := e.Data.(type) {
		case *js_ast.EUnary:
			if n.Op == js_ast.UnOpTypeof {
				if id, ok := n.Value.Data.(*js_ast.EIdentifier); ok {
					c.typeofGuarded[id.Ident.Name] = true
				}
			}
		case *js_ast.EDot:
			if id, ok := n.Target.Data.(*js_ast.EIdentifier); ok {
				c.recordDotUse(id.Ident)
			}
		}
		js_ast.WalkExprChildren(e, walkStmt, walkExpr)
	}
	for i := range prog.Body {
		walkStmt(&prog.Body[i])
	}

	type candidate struct {
		name string
		uses []*js_ast.Ident
	}
	var selected []candidate
	for _, name := range c.order {
		uses := c.dotUses[name]
		if len(uses) < 2 || c.typeofGuarded[name] {
			continue
		}
		if _, isGlobal := prog.Scope.Globals[name]; !isGlobal {
			continue
		}
		// id=1: the mangler will shorten the placeholder later
		if costmodel.GlobalHoistProfit(len(uses), len(name), 1, false) <= 0 {
			continue
		}
		selected = append(selected, candidate{name, uses})
	}
	if len(selected) == 0 {
		return
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return len(selected[i].uses) > len(selected[j].uses)
	})

	decls := make([]js_ast.Declarator, len(selected))
	for i, cand := range selected {
		placeholder := fmt.Sprintf("%s%d__", PlaceholderPrefix, i)
		for _, use := range cand.uses {
			use.Name = placeholder
		}
		value := js_ast.Expr{Data: &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: cand.name}}}
		decls[i] = js_ast.Declarator{
			Binding: js_ast.Pattern{Data: &js_ast.PIdentifier{Ident: &js_ast.Ident{Name: placeholder}}},
			Value:   &value,
		}
	}
	prog.PrependStmts(js_ast.Stmt{Data: &js_ast.SVar{Kind: js_ast.DeclConst, Decls: decls}})
}

type collector struct {
	dotUses       map[string][]*js_ast.Ident
	typeofGuarded map[string]bool
	order         []string // first-seen order, the sort tiebreak
}

func (c *collector) recordDotUse(id *js_ast.Ident) {
	if id.Ref != nil || excluded[id.Name] {
		return
	}
	if _, seen := c.dotUses[id.Name]; !seen {
		c.order = append(c.order, id.Name)
	}
	c.dotUses[id.Name] = append(c.dotUses[id.Name], id)
}
