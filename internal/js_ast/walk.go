package js_ast

// WalkStmtChildren calls st for every immediate child statement of stmt
// and ex for every immediate child expression. It does not recurse; a
// pass drives its own recursion so it can intercept the node shapes it
// cares about and fall back to this for everything else.
func WalkStmtChildren(stmt *Stmt, st func(*Stmt), ex func(*Expr)) {
	switch n := stmt.Data.(type) {
	case *SVar:
		for i := range n.Decls {
			d := &n.Decls[i]
			WalkPatternChildren(&d.Binding, ex)
			if d.Value != nil {
				ex(d.Value)
			}
		}

	case *SExpr:
		ex(&n.Value)

	case *SBlock:
		for i := range n.Stmts {
			st(&n.Stmts[i])
		}

	case *SIf:
		ex(&n.Test)
		st(&n.Yes)
		if n.No != nil {
			st(n.No)
		}

	case *SFor:
		st(&n.Init)
		if n.Test != nil {
			ex(n.Test)
		}
		if n.Update != nil {
			ex(n.Update)
		}
		st(&n.Body)

	case *SForIn:
		st(&n.Init)
		ex(&n.Value)
		st(&n.Body)

	case *SForOf:
		st(&n.Init)
		ex(&n.Value)
		st(&n.Body)

	case *SWhile:
		ex(&n.Test)
		st(&n.Body)

	case *SDoWhile:
		st(&n.Body)
		ex(&n.Test)

	case *SReturn:
		if n.Value != nil {
			ex(n.Value)
		}

	case *SThrow:
		ex(&n.Value)

	case *SLabel:
		st(&n.Stmt)

	case *SSwitch:
		ex(&n.Test)
		for i := range n.Cases {
			c := &n.Cases[i]
			if c.Value != nil {
				ex(c.Value)
			}
			for j := range c.Body {
				st(&c.Body[j])
			}
		}

	case *STry:
		for i := range n.Block {
			st(&n.Block[i])
		}
		if n.Catch != nil {
			if n.Catch.Binding != nil {
				WalkPatternChildren(n.Catch.Binding, ex)
			}
			for i := range n.Catch.Body {
				st(&n.Catch.Body[i])
			}
		}
		for i := range n.Finally {
			st(&n.Finally[i])
		}

	case *SFunction:
		WalkFnChildren(n.Fn, st, ex)

	case *SClass:
		WalkClassChildren(n.Class, st, ex)

	case *SExportDefault:
		ex(&n.Value)

	case *SExportDecl:
		st(&n.Stmt)
	}
}

// WalkExprChildren calls st / ex for the immediate children of expr.
func WalkExprChildren(expr *Expr, st func(*Stmt), ex func(*Expr)) {
	switch n := expr.Data.(type) {
	case *EArray:
		for i := range n.Items {
			if n.Items[i].Value.Data != nil { // elisions have no value
				ex(&n.Items[i].Value)
			}
		}

	case *EObject:
		for i := range n.Properties {
			p := &n.Properties[i]
			if p.Computed {
				ex(&p.Key)
			}
			if p.Fn != nil {
				WalkFnChildren(p.Fn, st, ex)
			} else {
				ex(&p.Value)
			}
		}

	case *EDot:
		ex(&n.Target)

	case *EIndex:
		ex(&n.Target)
		ex(&n.Index)

	case *ECall:
		ex(&n.Target)
		for i := range n.Args {
			ex(&n.Args[i].Value)
		}

	case *ENew:
		ex(&n.Target)
		for i := range n.Args {
			ex(&n.Args[i].Value)
		}

	case *EFunction:
		WalkFnChildren(n.Fn, st, ex)

	case *EArrow:
		WalkFnChildren(n.Fn, st, ex)

	case *EClass:
		WalkClassChildren(n.Class, st, ex)

	case *EUnary:
		ex(&n.Value)

	case *EBinary:
		ex(&n.Left)
		ex(&n.Right)

	case *EIf:
		ex(&n.Test)
		ex(&n.Yes)
		ex(&n.No)

	case *EAwait:
		ex(&n.Value)

	case *EYield:
		if n.Value != nil {
			ex(n.Value)
		}

	case *ETemplate:
		for i := range n.Parts {
			ex(&n.Parts[i].Value)
		}

	case *ETaggedTemplate:
		ex(&n.Tag)
		ex(&n.Template)

	case *ESpread:
		ex(&n.Value)

	case *EParenthesized:
		ex(&n.Value)
	}
}

// WalkFnChildren visits a function's parameter defaults, computed
// parameter keys, and body.
func WalkFnChildren(fn *Fn, st func(*Stmt), ex func(*Expr)) {
	for i := range fn.Args {
		p := &fn.Args[i]
		WalkPatternChildren(&p.Binding, ex)
		if p.DefaultValue != nil {
			ex(p.DefaultValue)
		}
	}
	if fn.ArrowExprBody != nil {
		ex(fn.ArrowExprBody)
		return
	}
	for i := range fn.Body {
		st(&fn.Body[i])
	}
}

// WalkClassChildren visits a class's superclass, computed member keys,
// method bodies, and field initializers. Non-computed member keys are
// names, not expressions, and are not visited.
func WalkClassChildren(class *Class, st func(*Stmt), ex func(*Expr)) {
	if class.SuperClass != nil {
		ex(class.SuperClass)
	}
	for i := range class.Members {
		m := &class.Members[i]
		if m.Computed {
			ex(&m.Key)
		}
		if m.Fn != nil {
			WalkFnChildren(m.Fn, st, ex)
		}
		if m.Value != nil {
			ex(m.Value)
		}
	}
}

// WalkPatternChildren visits the expressions nested inside a binding
// pattern: element defaults and computed property keys. The bound names
// themselves are identifiers, not expressions, and are not visited.
func WalkPatternChildren(p *Pattern, ex func(*Expr)) {
	switch n := p.Data.(type) {
	case *PArray:
		for i := range n.Items {
			item := &n.Items[i]
			WalkPatternChildren(&item.Pattern, ex)
			if item.DefaultValue != nil {
				ex(item.DefaultValue)
			}
		}
	case *PObject:
		for i := range n.Properties {
			prop := &n.Properties[i]
			if prop.Computed {
				ex(&prop.Key)
			}
			WalkPatternChildren(&prop.Value, ex)
			if prop.DefaultValue != nil {
				ex(prop.DefaultValue)
			}
		}
	}
}
