// Package js_printer prints a js_ast.Program back to compact source: no
// whitespace beyond what the grammar requires, double-quoted strings with
// JSON-style escaping, and shortest-form numbers. The byte-cost model in
// internal/costmodel is derived against exactly this printer, so changes
// to the emitted forms must be reflected there.
package js_printer

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nqminh/niu/internal/js_ast"
)

// Operator precedence levels, lowest binding first. These mirror the
// parser's grammar; printExpr wraps a node in parentheses whenever its
// level is below what its context requires.
const (
	lLowest = iota
	lComma
	lAssign
	lConditional
	lNullishCoalescing
	lLogicalOr
	lLogicalAnd
	lBitwiseOr
	lBitwiseXor
	lBitwiseAnd
	lEquals
	lCompare
	lShift
	lAdd
	lMultiply
	lExponentiation
	lPrefix
	lPostfix
	lNew
	lCall
)

type binOpEntry struct {
	text       string
	level      int
	rightAssoc bool
	isKeyword  bool
}

var binOpTable = map[js_ast.BinOp]binOpEntry{
	js_ast.BinOpComma:             {",", lComma, false, false},
	js_ast.BinOpAssign:            {"=", lAssign, true, false},
	js_ast.BinOpAddAssign:         {"+=", lAssign, true, false},
	js_ast.BinOpSubAssign:         {"-=", lAssign, true, false},
	js_ast.BinOpMulAssign:         {"*=", lAssign, true, false},
	js_ast.BinOpDivAssign:         {"/=", lAssign, true, false},
	js_ast.BinOpModAssign:         {"%=", lAssign, true, false},
	js_ast.BinOpPowAssign:         {"**=", lAssign, true, false},
	js_ast.BinOpAndAssign:         {"&&=", lAssign, true, false},
	js_ast.BinOpOrAssign:          {"||=", lAssign, true, false},
	js_ast.BinOpNullishAssign:     {"??=", lAssign, true, false},
	js_ast.BinOpBitAndAssign:      {"&=", lAssign, true, false},
	js_ast.BinOpBitOrAssign:       {"|=", lAssign, true, false},
	js_ast.BinOpBitXorAssign:      {"^=", lAssign, true, false},
	js_ast.BinOpShlAssign:         {"<<=", lAssign, true, false},
	js_ast.BinOpShrAssign:         {">>=", lAssign, true, false},
	js_ast.BinOpUShrAssign:        {">>>=", lAssign, true, false},
	js_ast.BinOpNullishCoalescing: {"??", lNullishCoalescing, false, false},
	js_ast.BinOpOr:                {"||", lLogicalOr, false, false},
	js_ast.BinOpAnd:               {"&&", lLogicalAnd, false, false},
	js_ast.BinOpBitOr:             {"|", lBitwiseOr, false, false},
	js_ast.BinOpBitXor:            {"^", lBitwiseXor, false, false},
	js_ast.BinOpBitAnd:            {"&", lBitwiseAnd, false, false},
	js_ast.BinOpEq:                {"==", lEquals, false, false},
	js_ast.BinOpStrictEq:          {"===", lEquals, false, false},
	js_ast.BinOpNe:                {"!=", lEquals, false, false},
	js_ast.BinOpStrictNe:          {"!==", lEquals, false, false},
	js_ast.BinOpLt:                {"<", lCompare, false, false},
	js_ast.BinOpLe:                {"<=", lCompare, false, false},
	js_ast.BinOpGt:                {">", lCompare, false, false},
	js_ast.BinOpGe:                {">=", lCompare, false, false},
	js_ast.BinOpIn:                {"in", lCompare, false, true},
	js_ast.BinOpInstanceof:        {"instanceof", lCompare, false, true},
	js_ast.BinOpShl:               {"<<", lShift, false, false},
	js_ast.BinOpShr:               {">>", lShift, false, false},
	js_ast.BinOpUShr:              {">>>", lShift, false, false},
	js_ast.BinOpAdd:               {"+", lAdd, false, false},
	js_ast.BinOpSub:               {"-", lAdd, false, false},
	js_ast.BinOpMul:               {"*", lMultiply, false, false},
	js_ast.BinOpDiv:               {"/", lMultiply, false, false},
	js_ast.BinOpMod:               {"%", lMultiply, false, false},
	js_ast.BinOpPow:               {"**", lExponentiation, true, false},
}

// Print prints the whole program.
func Print(prog *js_ast.Program) string {
	p := &printer{}
	for i := range prog.Body {
		p.printStmt(&prog.Body[i])
	}
	return string(p.js)
}

type printer struct {
	js []byte
}

func (p *printer) print(text string) {
	p.js = append(p.js, text...)
}

// printName prints an identifier, keyword, or number, inserting a space
// when the previous byte could otherwise glue onto it.
func (p *printer) printName(text string) {
	if n := len(p.js); n > 0 {
		c := p.js[n-1]
		if c == '$' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80 {
			p.js = append(p.js, ' ')
		}
	}
	p.print(text)
}

// printOperator prints a punctuation operator, guarding against "+ +"
// and "- -" gluing into "++" or "--".
func (p *printer) printOperator(text string) {
	if n := len(p.js); n > 0 && len(text) > 0 {
		c := p.js[n-1]
		if (c == '+' || c == '-') && text[0] == c {
			p.js = append(p.js, ' ')
		}
	}
	p.print(text)
}

// ---- Statements ----

func (p *printer) printStmt(stmt *js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SEmpty:
		p.print(";")

	case *js_ast.SDirective:
		p.print(QuoteJSON(s.Value))
		p.print(";")

	case *js_ast.SDebugger:
		p.printName("debugger")
		p.print(";")

	case *js_ast.SVar:
		p.printDecl(s)
		p.print(";")

	case *js_ast.SExpr:
		p.printExprStmt(s.Value)
		p.print(";")

	case *js_ast.SBlock:
		p.print("{")
		for i := range s.Stmts {
			p.printStmt(&s.Stmts[i])
		}
		p.print("}")

	case *js_ast.SIf:
		p.printName("if")
		p.print("(")
		p.printExpr(s.Test, lLowest)
		p.print(")")
		p.printStmt(&s.Yes)
		if s.No != nil {
			p.printName("else")
			p.printStmt(s.No)
		}

	case *js_ast.SFor:
		p.printName("for")
		p.print("(")
		p.printForInit(&s.Init)
		p.print(";")
		if s.Test != nil {
			p.printExpr(*s.Test, lLowest)
		}
		p.print(";")
		if s.Update != nil {
			p.printExpr(*s.Update, lLowest)
		}
		p.print(")")
		p.printStmt(&s.Body)

	case *js_ast.SForIn:
		p.printName("for")
		p.print("(")
		p.printForInit(&s.Init)
		p.printName("in")
		p.printExpr(s.Value, lLowest)
		p.print(")")
		p.printStmt(&s.Body)

	case *js_ast.SForOf:
		p.printName("for")
		if s.Await {
			p.printName("await")
		}
		p.print("(")
		p.printForInit(&s.Init)
		p.printName("of")
		p.printExpr(s.Value, lAssign)
		p.print(")")
		p.printStmt(&s.Body)

	case *js_ast.SWhile:
		p.printName("while")
		p.print("(")
		p.printExpr(s.Test, lLowest)
		p.print(")")
		p.printStmt(&s.Body)

	case *js_ast.SDoWhile:
		p.printName("do")
		p.printStmt(&s.Body)
		p.printName("while")
		p.print("(")
		p.printExpr(s.Test, lLowest)
		p.print(")")
		p.print(";")

	case *js_ast.SReturn:
		p.printName("return")
		if s.Value != nil {
			p.printExpr(*s.Value, lLowest)
		}
		p.print(";")

	case *js_ast.SThrow:
		p.printName("throw")
		p.printExpr(s.Value, lLowest)
		p.print(";")

	case *js_ast.SBreak:
		p.printName("break")
		if s.Label != nil {
			p.printName(s.Label.Name)
		}
		p.print(";")

	case *js_ast.SContinue:
		p.printName("continue")
		if s.Label != nil {
			p.printName(s.Label.Name)
		}
		p.print(";")

	case *js_ast.SLabel:
		p.printName(s.Name)
		p.print(":")
		p.printStmt(&s.Stmt)

	case *js_ast.SSwitch:
		p.printName("switch")
		p.print("(")
		p.printExpr(s.Test, lLowest)
		p.print("){")
		for i := range s.Cases {
			c := &s.Cases[i]
			if c.Value != nil {
				p.printName("case")
				p.printExpr(*c.Value, lLowest)
			} else {
				p.printName("default")
			}
			p.print(":")
			for j := range c.Body {
				p.printStmt(&c.Body[j])
			}
		}
		p.print("}")

	case *js_ast.STry:
		p.printName("try")
		p.print("{")
		for i := range s.Block {
			p.printStmt(&s.Block[i])
		}
		p.print("}")
		if s.Catch != nil {
			p.printName("catch")
			if s.Catch.Binding != nil {
				p.print("(")
				p.printPattern(s.Catch.Binding)
				p.print(")")
			}
			p.print("{")
			for i := range s.Catch.Body {
				p.printStmt(&s.Catch.Body[i])
			}
			p.print("}")
		}
		if s.Finally != nil {
			p.printName("finally")
			p.print("{")
			for i := range s.Finally {
				p.printStmt(&s.Finally[i])
			}
			p.print("}")
		}

	case *js_ast.SFunction:
		p.printFn(s.Fn)

	case *js_ast.SClass:
		p.printClass(s.Class)

	case *js_ast.SImport:
		p.printName("import")
		needsFrom := false
		if s.DefaultName != nil {
			p.printName(s.DefaultName.Name)
			needsFrom = true
			if s.NamespaceName != nil || s.HasItems {
				p.print(",")
			}
		}
		if s.NamespaceName != nil {
			p.print("*")
			p.printName("as")
			p.printName(s.NamespaceName.Name)
			needsFrom = true
		}
		if s.HasItems {
			p.print("{")
			for i := range s.Items {
				if i > 0 {
					p.print(",")
				}
				item := &s.Items[i]
				if item.Local.Name == item.ImportedName {
					p.printName(item.Local.Name)
				} else {
					p.printName(item.ImportedName)
					p.printName("as")
					p.printName(item.Local.Name)
				}
			}
			p.print("}")
			needsFrom = true
		}
		if needsFrom {
			p.printName("from")
		}
		p.print(QuoteJSON(s.Path))
		p.print(";")

	case *js_ast.SExportNamed:
		p.printName("export")
		p.print("{")
		for i := range s.Items {
			if i > 0 {
				p.print(",")
			}
			item := &s.Items[i]
			if item.Local.Name == item.ExportedName {
				p.printName(item.Local.Name)
			} else {
				p.printName(item.Local.Name)
				p.printName("as")
				p.printName(item.ExportedName)
			}
		}
		p.print("}")
		if s.HasPath {
			p.printName("from")
			p.print(QuoteJSON(s.Path))
		}
		p.print(";")

	case *js_ast.SExportDefault:
		p.printName("export")
		p.printName("default")
		p.printExpr(s.Value, lComma)
		p.print(";")

	case *js_ast.SExportStar:
		p.printName("export")
		p.print("*")
		if s.NamespaceName != "" {
			p.printName("as")
			p.printName(s.NamespaceName)
		}
		p.printName("from")
		p.print(QuoteJSON(s.Path))
		p.print(";")

	case *js_ast.SExportDecl:
		p.printName("export")
		p.printStmt(&s.Stmt)
	}
}

func (p *printer) printForInit(init *js_ast.Stmt) {
	switch s := init.Data.(type) {
	case *js_ast.SVar:
		p.printDecl(s)
	case *js_ast.SExpr:
		p.printExpr(s.Value, lLowest)
	case *js_ast.SEmpty:
	}
}

func (p *printer) printDecl(s *js_ast.SVar) {
	p.printName(s.Kind.String())
	for i := range s.Decls {
		if i > 0 {
			p.print(",")
		}
		d := &s.Decls[i]
		p.printPattern(&d.Binding)
		if d.Value != nil {
			p.print("=")
			p.printExpr(*d.Value, lAssign)
		}
	}
}

// printExprStmt wraps the expression in parentheses when its leftmost
// token would otherwise be parsed as the start of a statement.
func (p *printer) printExprStmt(expr js_ast.Expr) {
	if startsWithStmtHazard(expr) {
		p.print("(")
		p.printExpr(expr, lLowest)
		p.print(")")
		return
	}
	p.printExpr(expr, lLowest)
}

func startsWithStmtHazard(expr js_ast.Expr) bool {
	for {
		switch e := expr.Data.(type) {
		case *js_ast.EObject, *js_ast.EFunction, *js_ast.EClass:
			return true
		case *js_ast.EBinary:
			expr = e.Left
		case *js_ast.EDot:
			expr = e.Target
		case *js_ast.EIndex:
			expr = e.Target
		case *js_ast.ECall:
			expr = e.Target
		case *js_ast.EIf:
			expr = e.Test
		case *js_ast.ETaggedTemplate:
			expr = e.Tag
		case *js_ast.EUnary:
			if !e.Op.IsPostfix() {
				return false
			}
			expr = e.Value
		default:
			return false
		}
	}
}

// ---- Patterns ----

func (p *printer) printPattern(pat *js_ast.Pattern) {
	switch n := pat.Data.(type) {
	case *js_ast.PIdentifier:
		p.printName(n.Ident.Name)

	case *js_ast.PArray:
		p.print("[")
		for i := range n.Items {
			if i > 0 {
				p.print(",")
			}
			item := &n.Items[i]
			if item.Pattern.Data == nil {
				continue // elision
			}
			if item.IsSpread {
				p.print("...")
			}
			p.printPattern(&item.Pattern)
			if item.DefaultValue != nil {
				p.print("=")
				p.printExpr(*item.DefaultValue, lAssign)
			}
		}
		p.print("]")

	case *js_ast.PObject:
		p.print("{")
		for i := range n.Properties {
			if i > 0 {
				p.print(",")
			}
			prop := &n.Properties[i]
			if prop.IsSpread {
				p.print("...")
				p.printPattern(&prop.Value)
				continue
			}
			shorthand := false
			if prop.IsShorthand {
				if key, ok := prop.Key.Data.(*js_ast.EPropName); ok {
					if id, ok := prop.Value.Data.(*js_ast.PIdentifier); ok && id.Ident.Name == key.Name.Name {
						shorthand = true
					}
				}
			}
			if !shorthand {
				p.printPropertyKey(prop.Key, prop.Computed)
				p.print(":")
			}
			p.printPattern(&prop.Value)
			if prop.DefaultValue != nil {
				p.print("=")
				p.printExpr(*prop.DefaultValue, lAssign)
			}
		}
		p.print("}")
	}
}

func (p *printer) printPropertyKey(key js_ast.Expr, computed bool) {
	if computed {
		p.print("[")
		p.printExpr(key, lComma)
		p.print("]")
		return
	}
	switch k := key.Data.(type) {
	case *js_ast.EPropName:
		p.printName(k.Name.Name)
	case *js_ast.EString:
		p.print(QuoteJSON(k.Value))
	case *js_ast.ENumber:
		p.printName(FormatNumber(k.Value))
	default:
		p.printExpr(key, lComma)
	}
}

// ---- Functions & classes ----

func (p *printer) printFn(fn *js_ast.Fn) {
	if fn.IsAsync {
		p.printName("async")
	}
	p.printName("function")
	if fn.IsGenerator {
		p.print("*")
	}
	if fn.Name != nil {
		p.printName(fn.Name.Name)
	}
	p.printParams(fn.Args)
	p.print("{")
	for i := range fn.Body {
		p.printStmt(&fn.Body[i])
	}
	p.print("}")
}

func (p *printer) printParams(params []js_ast.Param) {
	p.print("(")
	for i := range params {
		if i > 0 {
			p.print(",")
		}
		param := &params[i]
		if param.IsSpread {
			p.print("...")
		}
		p.printPattern(&param.Binding)
		if param.DefaultValue != nil {
			p.print("=")
			p.printExpr(*param.DefaultValue, lAssign)
		}
	}
	p.print(")")
}

func (p *printer) printClass(class *js_ast.Class) {
	p.printName("class")
	if class.Name != nil {
		p.printName(class.Name.Name)
	}
	if class.SuperClass != nil {
		p.printName("extends")
		p.printExpr(*class.SuperClass, lPostfix)
	}
	p.print("{")
	for i := range class.Members {
		m := &class.Members[i]
		if m.Static {
			p.printName("static")
		}
		switch m.Kind {
		case js_ast.MemberGet:
			p.printName("get")
		case js_ast.MemberSet:
			p.printName("set")
		}
		if m.Fn != nil {
			if m.Fn.IsAsync {
				p.printName("async")
			}
			if m.Fn.IsGenerator {
				p.print("*")
			}
		}
		p.printPropertyKey(m.Key, m.Computed)
		if m.Fn != nil {
			p.printParams(m.Fn.Args)
			p.print("{")
			for j := range m.Fn.Body {
				p.printStmt(&m.Fn.Body[j])
			}
			p.print("}")
		} else {
			if m.Value != nil {
				p.print("=")
				p.printExpr(*m.Value, lComma)
			}
			p.print(";")
		}
	}
	p.print("}")
}

// ---- Expressions ----

// exprLevel is the precedence the expression itself binds at.
func exprLevel(expr js_ast.Expr) int {
	switch e := expr.Data.(type) {
	case *js_ast.EBinary:
		return binOpTable[e.Op].level
	case *js_ast.EIf:
		return lConditional
	case *js_ast.EArrow, *js_ast.EYield:
		return lAssign
	case *js_ast.EUnary:
		if e.Op.IsPostfix() {
			return lPostfix
		}
		return lPrefix
	case *js_ast.EAwait:
		return lPrefix
	case *js_ast.ENew:
		return lNew
	case *js_ast.ESpread:
		return lComma
	default:
		return lCall
	}
}

func (p *printer) printExpr(expr js_ast.Expr, level int) {
	if expr.Data == nil {
		return // array elision
	}
	if exprLevel(expr) < level {
		p.print("(")
		p.printExpr(expr, lLowest)
		p.print(")")
		return
	}

	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		p.printName(e.Ident.Name)

	case *js_ast.EPropName:
		p.printName(e.Name.Name)

	case *js_ast.ENumber:
		p.printName(FormatNumber(e.Value))

	case *js_ast.EString:
		p.print(QuoteJSON(e.Value))

	case *js_ast.EBoolean:
		if e.Value {
			p.printName("true")
		} else {
			p.printName("false")
		}

	case *js_ast.ENull:
		p.printName("null")

	case *js_ast.EUndefined:
		p.printName("undefined")

	case *js_ast.EBigInt:
		p.printName(e.Value + "n")

	case *js_ast.ERegExp:
		p.printName(e.Value)

	case *js_ast.EThis:
		p.printName("this")

	case *js_ast.ESuper:
		p.printName("super")

	case *js_ast.EJSXElement:
		p.printName(e.Raw)

	case *js_ast.EArray:
		p.print("[")
		for i := range e.Items {
			if i > 0 {
				p.print(",")
			}
			item := &e.Items[i]
			if item.Value.Data == nil {
				continue // elision
			}
			if item.IsSpread {
				p.print("...")
			}
			p.printExpr(item.Value, lAssign)
		}
		p.print("]")

	case *js_ast.EObject:
		p.print("{")
		for i := range e.Properties {
			if i > 0 {
				p.print(",")
			}
			p.printProperty(&e.Properties[i])
		}
		p.print("}")

	case *js_ast.EDot:
		if _, ok := e.Target.Data.(*js_ast.ENumber); ok {
			p.print("(")
			p.printExpr(e.Target, lLowest)
			p.print(")")
		} else {
			p.printExpr(e.Target, lPostfix)
		}
		if e.Optional {
			p.print("?.")
		} else {
			p.print(".")
		}
		p.print(e.Name.Name)

	case *js_ast.EIndex:
		p.printExpr(e.Target, lPostfix)
		if e.Optional {
			p.print("?.")
		}
		p.print("[")
		p.printExpr(e.Index, lLowest)
		p.print("]")

	case *js_ast.ECall:
		p.printExpr(e.Target, lPostfix)
		if e.Optional {
			p.print("?.")
		}
		p.printArgs(e.Args)

	case *js_ast.ENew:
		p.printName("new")
		if hasCallInMemberChain(e.Target) {
			p.print("(")
			p.printExpr(e.Target, lLowest)
			p.print(")")
		} else {
			p.printExpr(e.Target, lPostfix)
		}
		p.printArgs(e.Args)

	case *js_ast.EFunction:
		p.printFn(e.Fn)

	case *js_ast.EArrow:
		p.printArrow(e.Fn)

	case *js_ast.EClass:
		p.printClass(e.Class)

	case *js_ast.EUnary:
		if e.Op.IsPostfix() {
			p.printExpr(e.Value, lPostfix)
			if e.Op == js_ast.UnOpPostInc {
				p.printOperator("++")
			} else {
				p.printOperator("--")
			}
			break
		}
		switch e.Op {
		case js_ast.UnOpPos:
			p.printOperator("+")
		case js_ast.UnOpNeg:
			p.printOperator("-")
		case js_ast.UnOpNot:
			p.print("!")
		case js_ast.UnOpBitNot:
			p.print("~")
		case js_ast.UnOpTypeof:
			p.printName("typeof")
		case js_ast.UnOpVoid:
			p.printName("void")
		case js_ast.UnOpDelete:
			p.printName("delete")
		case js_ast.UnOpPreInc:
			p.printOperator("++")
		case js_ast.UnOpPreDec:
			p.printOperator("--")
		}
		p.printExpr(e.Value, lPrefix)

	case *js_ast.EBinary:
		entry := binOpTable[e.Op]
		leftLevel := entry.level
		rightLevel := entry.level + 1
		if entry.rightAssoc {
			leftLevel = entry.level + 1
			rightLevel = entry.level
		}
		p.printExpr(e.Left, leftLevel)
		if entry.isKeyword {
			p.printName(entry.text)
		} else {
			p.printOperator(entry.text)
		}
		p.printExpr(e.Right, rightLevel)

	case *js_ast.EIf:
		p.printExpr(e.Test, lConditional+1)
		p.print("?")
		p.printExpr(e.Yes, lAssign)
		p.print(":")
		p.printExpr(e.No, lConditional)

	case *js_ast.EAwait:
		p.printName("await")
		p.printExpr(e.Value, lPrefix)

	case *js_ast.EYield:
		p.printName("yield")
		if e.IsStar {
			p.print("*")
		}
		if e.Value != nil {
			p.printExpr(*e.Value, lAssign)
		}

	case *js_ast.ETemplate:
		p.printTemplate(e)

	case *js_ast.ETaggedTemplate:
		p.printExpr(e.Tag, lPostfix)
		if tmpl, ok := e.Template.Data.(*js_ast.ETemplate); ok {
			p.printTemplate(tmpl)
		}

	case *js_ast.ESpread:
		p.print("...")
		p.printExpr(e.Value, lAssign)

	case *js_ast.EParenthesized:
		p.print("(")
		p.printExpr(e.Value, lLowest)
		p.print(")")
	}
}

func (p *printer) printTemplate(tmpl *js_ast.ETemplate) {
	p.print("`")
	p.print(tmpl.HeadRaw)
	for i := range tmpl.Parts {
		part := &tmpl.Parts[i]
		p.print("${")
		p.printExpr(part.Value, lLowest)
		p.print("}")
		p.print(part.Raw)
	}
	p.print("`")
}

func (p *printer) printArgs(args []js_ast.ArrayItem) {
	p.print("(")
	for i := range args {
		if i > 0 {
			p.print(",")
		}
		if args[i].IsSpread {
			p.print("...")
		}
		p.printExpr(args[i].Value, lAssign)
	}
	p.print(")")
}

func (p *printer) printProperty(prop *js_ast.Property) {
	if prop.Kind == js_ast.PropertySpread {
		p.print("...")
		p.printExpr(prop.Value, lAssign)
		return
	}

	if prop.Fn != nil {
		switch prop.Kind {
		case js_ast.PropertyGet:
			p.printName("get")
		case js_ast.PropertySet:
			p.printName("set")
		default:
			if prop.Fn.IsAsync {
				p.printName("async")
			}
			if prop.Fn.IsGenerator {
				p.print("*")
			}
		}
		p.printPropertyKey(prop.Key, prop.Computed)
		p.printParams(prop.Fn.Args)
		p.print("{")
		for i := range prop.Fn.Body {
			p.printStmt(&prop.Fn.Body[i])
		}
		p.print("}")
		return
	}

	if prop.Shorthand && !prop.Computed {
		if key, ok := prop.Key.Data.(*js_ast.EPropName); ok {
			switch v := prop.Value.Data.(type) {
			case *js_ast.EIdentifier:
				if v.Ident.Name == key.Name.Name {
					p.printName(v.Ident.Name)
					return
				}
			case *js_ast.EBinary:
				// {x=1} inside a destructuring assignment target
				if id, ok := v.Left.Data.(*js_ast.EIdentifier); ok &&
					v.Op == js_ast.BinOpAssign && id.Ident.Name == key.Name.Name {
					p.printName(id.Ident.Name)
					p.print("=")
					p.printExpr(v.Right, lAssign)
					return
				}
			}
		}
	}

	p.printPropertyKey(prop.Key, prop.Computed)
	p.print(":")
	p.printExpr(prop.Value, lAssign)
}

func (p *printer) printArrow(fn *js_ast.Fn) {
	if fn.IsAsync {
		p.printName("async")
	}
	if len(fn.Args) == 1 && !fn.Args[0].IsSpread && fn.Args[0].DefaultValue == nil {
		if id, ok := fn.Args[0].Binding.Data.(*js_ast.PIdentifier); ok {
			p.printName(id.Ident.Name)
		} else {
			p.printParams(fn.Args)
		}
	} else {
		p.printParams(fn.Args)
	}
	p.print("=>")
	if fn.ArrowExprBody != nil {
		if startsWithStmtHazard(*fn.ArrowExprBody) {
			p.print("(")
			p.printExpr(*fn.ArrowExprBody, lLowest)
			p.print(")")
		} else {
			p.printExpr(*fn.ArrowExprBody, lComma)
		}
		return
	}
	p.print("{")
	for i := range fn.Body {
		p.printStmt(&fn.Body[i])
	}
	p.print("}")
}

// hasCallInMemberChain reports whether expr's member chain contains a
// call, in which case "new" needs parentheses around its target.
func hasCallInMemberChain(expr js_ast.Expr) bool {
	for {
		switch e := expr.Data.(type) {
		case *js_ast.ECall:
			return true
		case *js_ast.EDot:
			if e.Optional {
				return true
			}
			expr = e.Target
		case *js_ast.EIndex:
			if e.Optional {
				return true
			}
			expr = e.Target
		default:
			return false
		}
	}
}

// ---- Literal forms ----

// FormatNumber prints a float64 in its shortest JavaScript literal form:
// "1000000" loses to "1e6", "0.5" loses to ".5".
func FormatNumber(value float64) string {
	if math.IsInf(value, 1) {
		return "Infinity"
	}
	if math.IsInf(value, -1) {
		return "-Infinity"
	}
	if math.IsNaN(value) {
		return "NaN"
	}

	fixed := strconv.FormatFloat(value, 'f', -1, 64)
	exp := cleanExponentForm(strconv.FormatFloat(value, 'e', -1, 64))

	shortest := fixed
	if len(exp) < len(shortest) {
		shortest = exp
	}
	if strings.HasPrefix(shortest, "0.") {
		shortest = shortest[1:]
	} else if strings.HasPrefix(shortest, "-0.") {
		shortest = "-" + shortest[2:]
	}
	return shortest
}

// cleanExponentForm rewrites Go's "1.25e+06" into JS's "1.25e6".
func cleanExponentForm(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}
	mant, exp := s[:i], s[i+1:]
	neg := false
	switch exp[0] {
	case '+':
		exp = exp[1:]
	case '-':
		neg = true
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		return mant
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}

// QuoteJSON quotes a string the way this printer emits string literals:
// double quotes with JSON-style escaping. The cost model sizes string
// representations with this exact function.
func QuoteJSON(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(text); {
		r, width := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		case '\b':
			sb.WriteString("\\b")
		case '\f':
			sb.WriteString("\\f")
		case '\v':
			sb.WriteString("\\v")
		case '\u2028':
			sb.WriteString("\\u2028")
		case '\u2029':
			sb.WriteString("\\u2029")
		default:
			if r < 0x20 {
				sb.WriteString("\\u")
				const hex = "0123456789abcdef"
				sb.WriteByte('0')
				sb.WriteByte('0')
				sb.WriteByte(hex[(r>>4)&0xf])
				sb.WriteByte(hex[r&0xf])
			} else {
				sb.WriteString(text[i : i+width])
			}
		}
		i += width
	}
	sb.WriteByte('"')
	return sb.String()
}
