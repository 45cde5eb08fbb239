// Package scope implements the scope/binding analyzer. Scope data is
// never cached on AST nodes: it is a side table rebuilt from scratch by
// Analyze whenever a structural mutation invalidates the previous tree.
// The pipeline (see the root niu package) calls Analyze once after
// parsing and again after the hoist passes print-and-reparse, so that
// hoisted placeholder declarations are visible as real bindings.
package scope

import (
	"github.com/nqminh/niu/internal/js_ast"
)

// Analyze walks prog and returns its scope tree (also stored on
// prog.Scope), with every Ident.Ref resolved to a *Binding or left nil
// (and recorded under the program scope's Globals map) when free.
func Analyze(prog *js_ast.Program) *js_ast.Scope {
	root := js_ast.NewScope(js_ast.ScopeProgram, nil)
	a := &analyzer{}
	a.hoistAndVisit(prog.Body, root)
	prog.Scope = root
	return root
}

type analyzer struct{}

// hoistAndVisit is the two-pass entry point used at the top of every
// function/program scope: first collect every "var" (and directly nested
// function declaration) name so that forward references resolve
// correctly, then visit statements in order declaring lexical bindings
// and resolving identifiers as they're reached.
func (a *analyzer) hoistAndVisit(stmts []js_ast.Stmt, s *js_ast.Scope) {
	a.collectHoisted(stmts, s)
	for i := range stmts {
		a.visitStmt(&stmts[i], s)
	}
}

// collectHoisted recurses through block-like statements (but not into
// nested function/arrow/class bodies, which get their own scope when
// visited) gathering "var" and top-level "function" declarations.
func (a *analyzer) collectHoisted(stmts []js_ast.Stmt, s *js_ast.Scope) {
	for i := range stmts {
		a.collectHoistedStmt(&stmts[i], s)
	}
}

func (a *analyzer) collectHoistedStmt(stmt *js_ast.Stmt, s *js_ast.Scope) {
	switch n := stmt.Data.(type) {
	case *js_ast.SVar:
		if n.Kind == js_ast.DeclVar {
			for i := range n.Decls {
				a.declarePatternHoisted(&n.Decls[i].Binding, s)
			}
		}
	case *js_ast.SFunction:
		if n.Fn.Name != nil {
			b := s.DeclareHoisted(n.Fn.Name.Name, n.Fn.Name)
			b.Kind = js_ast.BindingFunction
			n.Fn.Name.Ref = b
		}
	case *js_ast.SBlock:
		a.collectHoisted(n.Stmts, s)
	case *js_ast.SIf:
		a.collectHoistedStmt(&n.Yes, s)
		if n.No != nil {
			a.collectHoistedStmt(n.No, s)
		}
	case *js_ast.SFor:
		a.collectHoistedStmt(&n.Init, s)
		a.collectHoistedStmt(&n.Body, s)
	case *js_ast.SForIn:
		a.collectHoistedStmt(&n.Init, s)
		a.collectHoistedStmt(&n.Body, s)
	case *js_ast.SForOf:
		a.collectHoistedStmt(&n.Init, s)
		a.collectHoistedStmt(&n.Body, s)
	case *js_ast.SWhile:
		a.collectHoistedStmt(&n.Body, s)
	case *js_ast.SDoWhile:
		a.collectHoistedStmt(&n.Body, s)
	case *js_ast.SLabel:
		a.collectHoistedStmt(&n.Stmt, s)
	case *js_ast.SSwitch:
		for i := range n.Cases {
			a.collectHoisted(n.Cases[i].Body, s)
		}
	case *js_ast.SExportDecl:
		a.collectHoistedStmt(&n.Stmt, s)
	case *js_ast.STry:
		a.collectHoisted(n.Block, s)
		if n.Catch != nil {
			a.collectHoisted(n.Catch.Body, s)
		}
		a.collectHoisted(n.Finally, s)
	}
}

func (a *analyzer) declarePatternHoisted(p *js_ast.Pattern, s *js_ast.Scope) {
	switch n := p.Data.(type) {
	case *js_ast.PIdentifier:
		b := s.DeclareHoisted(n.Ident.Name, n.Ident)
		n.Ident.Ref = b
	case *js_ast.PArray:
		for i := range n.Items {
			a.declarePatternHoisted(&n.Items[i].Pattern, s)
		}
	case *js_ast.PObject:
		for i := range n.Properties {
			a.declarePatternHoisted(&n.Properties[i].Value, s)
		}
	}
}

// declarePattern declares a non-hoisted pattern (let/const/param/catch) in
// s, resolving default values and computed keys as ordinary expressions.
func (a *analyzer) declarePattern(p *js_ast.Pattern, kind js_ast.BindingKind, s *js_ast.Scope) {
	switch n := p.Data.(type) {
	case *js_ast.PIdentifier:
		b := s.Declare(n.Ident.Name, kind, n.Ident)
		b.Kind = kind
		n.Ident.Ref = b
	case *js_ast.PArray:
		for i := range n.Items {
			item := &n.Items[i]
			a.declarePattern(&item.Pattern, kind, s)
			if item.DefaultValue != nil {
				a.visitExpr(item.DefaultValue, s, false)
			}
		}
	case *js_ast.PObject:
		for i := range n.Properties {
			prop := &n.Properties[i]
			if prop.Computed {
				a.visitExpr(&prop.Key, s, false)
			}
			a.declarePattern(&prop.Value, kind, s)
			if prop.DefaultValue != nil {
				a.visitExpr(prop.DefaultValue, s, false)
			}
		}
	}
}

func (a *analyzer) visitStmt(stmt *js_ast.Stmt, s *js_ast.Scope) {
	switch n := stmt.Data.(type) {
	case *js_ast.SVar:
		kind := js_ast.BindingLet
		if n.Kind == js_ast.DeclConst {
			kind = js_ast.BindingConst
		}
		for i := range n.Decls {
			d := &n.Decls[i]
			if d.Value != nil {
				a.visitExpr(d.Value, s, false)
			}
			if n.Kind == js_ast.DeclVar {
				// Already declared during collectHoisted; just resolve
				// nested default-value expressions and computed keys.
				a.resolveHoistedPatternExprs(&d.Binding, s)
			} else {
				a.declarePattern(&d.Binding, kind, s)
			}
		}

	case *js_ast.SExpr:
		a.visitExpr(&n.Value, s, false)

	case *js_ast.SBlock:
		child := js_ast.NewScope(js_ast.ScopeBlock, s)
		a.hoistAndVisit(n.Stmts, child)

	case *js_ast.SIf:
		a.visitExpr(&n.Test, s, false)
		a.visitStmt(&n.Yes, s)
		if n.No != nil {
			a.visitStmt(n.No, s)
		}

	case *js_ast.SFor:
		child := js_ast.NewScope(js_ast.ScopeBlock, s)
		a.visitStmt(&n.Init, child)
		if n.Test != nil {
			a.visitExpr(n.Test, child, false)
		}
		if n.Update != nil {
			a.visitExpr(n.Update, child, false)
		}
		a.visitStmt(&n.Body, child)

	case *js_ast.SForIn:
		child := js_ast.NewScope(js_ast.ScopeBlock, s)
		a.visitStmt(&n.Init, child)
		a.visitExpr(&n.Value, child, false)
		a.visitStmt(&n.Body, child)

	case *js_ast.SForOf:
		child := js_ast.NewScope(js_ast.ScopeBlock, s)
		a.visitStmt(&n.Init, child)
		a.visitExpr(&n.Value, child, false)
		a.visitStmt(&n.Body, child)

	case *js_ast.SWhile:
		a.visitExpr(&n.Test, s, false)
		a.visitStmt(&n.Body, s)

	case *js_ast.SDoWhile:
		a.visitStmt(&n.Body, s)
		a.visitExpr(&n.Test, s, false)

	case *js_ast.SReturn:
		if n.Value != nil {
			a.visitExpr(n.Value, s, false)
		}

	case *js_ast.SThrow:
		a.visitExpr(&n.Value, s, false)

	case *js_ast.SLabel:
		a.visitStmt(&n.Stmt, s)

	case *js_ast.SSwitch:
		a.visitExpr(&n.Test, s, false)
		// All cases share a single block scope.
		child := js_ast.NewScope(js_ast.ScopeBlock, s)
		for i := range n.Cases {
			a.collectHoisted(n.Cases[i].Body, child)
		}
		for i := range n.Cases {
			c := &n.Cases[i]
			if c.Value != nil {
				a.visitExpr(c.Value, child, false)
			}
			for j := range c.Body {
				a.visitStmt(&c.Body[j], child)
			}
		}

	case *js_ast.SImport:
		if n.DefaultName != nil {
			b := s.Declare(n.DefaultName.Name, js_ast.BindingImport, n.DefaultName)
			n.DefaultName.Ref = b
		}
		if n.NamespaceName != nil {
			b := s.Declare(n.NamespaceName.Name, js_ast.BindingImport, n.NamespaceName)
			n.NamespaceName.Ref = b
		}
		for i := range n.Items {
			local := n.Items[i].Local
			b := s.Declare(local.Name, js_ast.BindingImport, local)
			local.Ref = b
		}

	case *js_ast.SExportNamed:
		// A re-export names bindings of another module; only a local
		// export clause reads bindings in scope.
		if n.Path == "" {
			for i := range n.Items {
				a.resolveIdent(n.Items[i].Local, s, false)
			}
		}

	case *js_ast.SExportDefault:
		a.visitExpr(&n.Value, s, false)

	case *js_ast.SExportDecl:
		a.visitStmt(&n.Stmt, s)

	case *js_ast.STry:
		block := js_ast.NewScope(js_ast.ScopeBlock, s)
		a.hoistAndVisit(n.Block, block)
		if n.Catch != nil {
			catchScope := js_ast.NewScope(js_ast.ScopeCatch, s)
			if n.Catch.Binding != nil {
				a.declarePattern(n.Catch.Binding, js_ast.BindingCatch, catchScope)
			}
			a.hoistAndVisit(n.Catch.Body, catchScope)
		}
		if n.Finally != nil {
			fin := js_ast.NewScope(js_ast.ScopeBlock, s)
			a.hoistAndVisit(n.Finally, fin)
		}

	case *js_ast.SFunction:
		// Name was already declared (and its Ref set) during collectHoisted.
		a.visitFn(n.Fn, s)

	case *js_ast.SClass:
		a.visitClass(n.Class, s, true)
	}
}

// resolveHoistedPatternExprs visits default values / computed keys nested
// inside a "var" pattern whose leaf identifiers were already declared by
// collectHoisted.
func (a *analyzer) resolveHoistedPatternExprs(p *js_ast.Pattern, s *js_ast.Scope) {
	switch n := p.Data.(type) {
	case *js_ast.PIdentifier:
		// already resolved
	case *js_ast.PArray:
		for i := range n.Items {
			item := &n.Items[i]
			a.resolveHoistedPatternExprs(&item.Pattern, s)
			if item.DefaultValue != nil {
				a.visitExpr(item.DefaultValue, s, false)
			}
		}
	case *js_ast.PObject:
		for i := range n.Properties {
			prop := &n.Properties[i]
			if prop.Computed {
				a.visitExpr(&prop.Key, s, false)
			}
			a.resolveHoistedPatternExprs(&prop.Value, s)
			if prop.DefaultValue != nil {
				a.visitExpr(prop.DefaultValue, s, false)
			}
		}
	}
}

func (a *analyzer) visitFn(fn *js_ast.Fn, parent *js_ast.Scope) {
	fnScope := js_ast.NewScope(js_ast.ScopeFunction, parent)
	// A named function expression sees its own name; declarations had
	// their name bound in the enclosing scope during collectHoisted.
	if fn.Name != nil && fn.Name.Ref == nil {
		b := fnScope.Declare(fn.Name.Name, js_ast.BindingFunction, fn.Name)
		fn.Name.Ref = b
	}
	for i := range fn.Args {
		param := &fn.Args[i]
		a.declarePattern(&param.Binding, js_ast.BindingParam, fnScope)
		if param.DefaultValue != nil {
			a.visitExpr(param.DefaultValue, fnScope, false)
		}
	}
	if fn.ArrowExprBody != nil {
		a.visitExpr(fn.ArrowExprBody, fnScope, false)
		return
	}
	a.hoistAndVisit(fn.Body, fnScope)
}

func (a *analyzer) visitClass(class *js_ast.Class, s *js_ast.Scope, isDeclaration bool) {
	if class.Name != nil {
		if isDeclaration {
			b := s.Declare(class.Name.Name, js_ast.BindingClass, class.Name)
			class.Name.Ref = b
		}
	}
	if class.SuperClass != nil {
		a.visitExpr(class.SuperClass, s, false)
	}
	// Class bodies introduce their own lexical scope only for the
	// implicit class-name binding inside methods; method/field bodies see
	// the enclosing scope plus that name, which a single extra scope
	// captures economically.
	classScope := js_ast.NewScope(js_ast.ScopeClass, s)
	if class.Name != nil && !isDeclaration {
		b := classScope.Declare(class.Name.Name, js_ast.BindingClass, class.Name)
		class.Name.Ref = b
	}
	for i := range class.Members {
		m := &class.Members[i]
		if m.Computed {
			a.visitExpr(&m.Key, classScope, false)
		}
		if m.Fn != nil {
			a.visitFn(m.Fn, classScope)
		}
		if m.Value != nil {
			a.visitExpr(m.Value, classScope, false)
		}
	}
}

func (a *analyzer) visitExpr(e *js_ast.Expr, s *js_ast.Scope, isAssignTarget bool) {
	switch n := e.Data.(type) {
	case *js_ast.EIdentifier:
		a.resolveIdent(n.Ident, s, isAssignTarget)

	case *js_ast.ENumber, *js_ast.EString, *js_ast.EBoolean, *js_ast.ENull,
		*js_ast.EBigInt, *js_ast.ERegExp, *js_ast.EPropName, *js_ast.EJSXElement,
		*js_ast.EThis, *js_ast.ESuper:
		// leaves

	case *js_ast.EUndefined:
		// leaf, but when used as an assignment target this would be a
		// syntax error in real JS; nothing to resolve either way.

	case *js_ast.EArray:
		for i := range n.Items {
			a.visitExpr(&n.Items[i].Value, s, isAssignTarget)
		}

	case *js_ast.EObject:
		for i := range n.Properties {
			p := &n.Properties[i]
			if p.Computed {
				a.visitExpr(&p.Key, s, false)
			}
			if p.Fn != nil {
				a.visitFn(p.Fn, s)
			} else {
				a.visitExpr(&p.Value, s, isAssignTarget)
			}
		}

	case *js_ast.EDot:
		a.visitExpr(&n.Target, s, false)

	case *js_ast.EIndex:
		a.visitExpr(&n.Target, s, false)
		a.visitExpr(&n.Index, s, false)

	case *js_ast.ECall:
		a.visitExpr(&n.Target, s, false)
		for i := range n.Args {
			a.visitExpr(&n.Args[i].Value, s, false)
		}

	case *js_ast.ENew:
		a.visitExpr(&n.Target, s, false)
		for i := range n.Args {
			a.visitExpr(&n.Args[i].Value, s, false)
		}

	case *js_ast.EFunction:
		a.visitFn(n.Fn, s)

	case *js_ast.EArrow:
		a.visitFn(n.Fn, s)

	case *js_ast.EClass:
		a.visitClass(n.Class, s, false)

	case *js_ast.EUnary:
		if n.Op == js_ast.UnOpPreInc || n.Op == js_ast.UnOpPreDec || n.Op == js_ast.UnOpPostInc || n.Op == js_ast.UnOpPostDec {
			a.visitExpr(&n.Value, s, true)
		} else {
			a.visitExpr(&n.Value, s, false)
		}

	case *js_ast.EBinary:
		if n.Op.IsAssign() {
			a.visitExpr(&n.Left, s, true)
			a.visitExpr(&n.Right, s, false)
		} else {
			a.visitExpr(&n.Left, s, false)
			a.visitExpr(&n.Right, s, false)
		}

	case *js_ast.EIf:
		a.visitExpr(&n.Test, s, false)
		a.visitExpr(&n.Yes, s, false)
		a.visitExpr(&n.No, s, false)

	case *js_ast.EAwait:
		a.visitExpr(&n.Value, s, false)

	case *js_ast.EYield:
		if n.Value != nil {
			a.visitExpr(n.Value, s, false)
		}

	case *js_ast.ETemplate:
		for i := range n.Parts {
			a.visitExpr(&n.Parts[i].Value, s, false)
		}

	case *js_ast.ETaggedTemplate:
		a.visitExpr(&n.Tag, s, false)
		a.visitExpr(&n.Template, s, false)

	case *js_ast.ESpread:
		a.visitExpr(&n.Value, s, isAssignTarget)

	case *js_ast.EParenthesized:
		a.visitExpr(&n.Value, s, isAssignTarget)
	}
}

func (a *analyzer) resolveIdent(id *js_ast.Ident, s *js_ast.Scope, isAssignTarget bool) {
	b := s.Lookup(id.Name)
	if b == nil {
		id.Ref = nil
		s.AddGlobalUse(id.Name, id)
		return
	}
	id.Ref = b
	if isAssignTarget {
		b.Violations = append(b.Violations, id)
	} else {
		b.References = append(b.References, id)
	}
	b.UseScopes = append(b.UseScopes, s)
}
