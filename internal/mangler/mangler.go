// Package mangler renames every binding to the shortest legal name that
// does not shadow an outer name still visible through its scope. Scopes
// are processed parent-first; within a scope, the most-referenced
// bindings get the shortest names.
package mangler

import (
	"sort"
	"strings"

	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_ast"
	"github.com/nqminh/niu/internal/js_lexer"
)

// alphabet orders the generated start characters by English letter
// frequency, so the hottest bindings land on the most compressible
// bytes, followed by the uppercase run and the two symbol characters.
const alphabet = "etaonirshldcumfpgwybvkxjqz" +
	"ETAONIRSHLDCUMFPGWYBVKXJQZ" +
	"$_"

// NumberToName maps an index to a candidate identifier. It is a
// bijection: indexes below len(alphabet) yield the single characters in
// order, higher indexes grow a prefix one character at a time.
func NumberToName(i int) string {
	n := len(alphabet)
	name := string(alphabet[i%n])
	for i = i / n; i > 0; i = i / n {
		i--
		name = string(alphabet[i%n]) + name
	}
	return name
}

// Mangle renames every binding in prog. Scope analysis must have run;
// the hoist placeholders from earlier passes are ordinary bindings by
// now and receive short names like everything else. Any placeholder
// occurrence the binding records missed (a printer-inserted copy, for
// example) is caught by a final sweep over the whole tree.
func Mangle(prog *js_ast.Program) {
	root := prog.Scope
	if root == nil {
		panic(diag.InternalErrorf("mangler ran before scope analysis"))
	}

	// Free globals keep their names, so no binding anywhere may take one.
	reservedGlobals := make(map[string]bool, len(root.Globals))
	for name := range root.Globals {
		reservedGlobals[name] = true
	}

	// Exported declarations are the module's public surface; their names
	// stay, and stay reserved.
	keep := map[*js_ast.Binding]bool{}
	for i := range prog.Body {
		if ed, ok := prog.Body[i].Data.(*js_ast.SExportDecl); ok {
			markExported(&ed.Stmt, keep, reservedGlobals)
		}
	}

	placeholderRenames := map[string]string{}

	var mangleScope func(s *js_ast.Scope)
	mangleScope = func(s *js_ast.Scope) {
		reserved := reservedNames(s)

		ranked := make([]*js_ast.Binding, len(s.Order))
		copy(ranked, s.Order)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalRefCount() > ranked[j].TotalRefCount()
		})

		next := 0
		for _, b := range ranked {
			if keep[b] {
				continue
			}
			var name string
			for {
				name = NumberToName(next)
				next++
				if js_lexer.ReservedWords[name] || reserved[name] || reservedGlobals[name] {
					continue
				}
				break
			}
			oldName := b.Name
			rename(b, name)
			if strings.HasPrefix(oldName, "__niu_") {
				placeholderRenames[oldName] = name
			}
		}

		for _, child := range s.Children {
			mangleScope(child)
		}
	}
	mangleScope(root)

	if len(placeholderRenames) > 0 {
		sweepPlaceholders(prog, placeholderRenames)
	}
}

// markExported records the bindings an export declaration introduces.
func markExported(stmt *js_ast.Stmt, keep map[*js_ast.Binding]bool, reserved map[string]bool) {
	note := func(id *js_ast.Ident) {
		if id != nil && id.Ref != nil {
			keep[id.Ref] = true
			reserved[id.Ref.Name] = true
		}
	}
	switch s := stmt.Data.(type) {
	case *js_ast.SVar:
		for i := range s.Decls {
			notePatternIdents(&s.Decls[i].Binding, note)
		}
	case *js_ast.SFunction:
		note(s.Fn.Name)
	case *js_ast.SClass:
		note(s.Class.Name)
	}
}

func notePatternIdents(p *js_ast.Pattern, note func(*js_ast.Ident)) {
	switch n := p.Data.(type) {
	case *js_ast.PIdentifier:
		note(n.Ident)
	case *js_ast.PArray:
		for i := range n.Items {
			notePatternIdents(&n.Items[i].Pattern, note)
		}
	case *js_ast.PObject:
		for i := range n.Properties {
			notePatternIdents(&n.Properties[i].Value, note)
		}
	}
}

// reservedNames collects the ancestor binding names that remain visible
// through s: an outer binding's (already final) name is off limits iff
// that binding has a use lexically inside s or one of its descendants.
func reservedNames(s *js_ast.Scope) map[string]bool {
	reserved := map[string]bool{}
	for ancestor := s.Parent; ancestor != nil; ancestor = ancestor.Parent {
		for _, b := range ancestor.Order {
			if reserved[b.Name] {
				continue
			}
			for _, use := range b.UseScopes {
				if isSelfOrAncestor(s, use) {
					reserved[b.Name] = true
					break
				}
			}
		}
	}
	return reserved
}

// isSelfOrAncestor reports whether s is scope or one of its ancestors.
func isSelfOrAncestor(s, scope *js_ast.Scope) bool {
	for ; scope != nil; scope = scope.Parent {
		if scope == s {
			return true
		}
	}
	return false
}

func rename(b *js_ast.Binding, name string) {
	if b.Decl == nil {
		panic(diag.InternalErrorf("binding %q has no declaring identifier", b.Name))
	}
	b.Name = name
	b.Decl.Name = name
	for _, ref := range b.References {
		ref.Name = name
	}
	for _, violation := range b.Violations {
		violation.Name = name
	}
}

// sweepPlaceholders replaces any remaining identifier whose name is a
// known placeholder. Binding records should already have covered every
// occurrence; this is the backstop that keeps "__niu_" out of output.
func sweepPlaceholders(prog *js_ast.Program, renames map[string]string) {
	var walkStmt func(*js_ast.Stmt)
	var walkExpr func(*js_ast.Expr)
	walkStmt = func(s *js_ast.Stmt) {
		js_ast.WalkStmtChildren(s, walkStmt, walkExpr)
	}
	walkExpr = func(e *js_ast.Expr) {
		if id, ok := e.Data.(*js_ast.EIdentifier); ok {
			if name, ok := renames[id.Ident.Name]; ok {
				id.Ident.Name = name
			}
		}
		js_ast.WalkExprChildren(e, walkStmt, walkExpr)
	}
	for i := range prog.Body {
		walkStmt(&prog.Body[i])
	}
}
