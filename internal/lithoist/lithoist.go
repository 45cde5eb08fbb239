// Package lithoist replaces repeated literals with hoisted bindings. A
// single walk buckets every string occurrence into the site categories
// that matter for byte accounting (plain literal, bracket index,
// computed key, dot access, identifier key, class-member key) and every
// non-string literal by value. Profitable values are rewritten to
// placeholder identifiers and declared at the top of the program, with
// many strings optionally packed into one split() call.
package lithoist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nqminh/niu/internal/costmodel"
	"github.com/nqminh/niu/internal/js_ast"
	"github.com/nqminh/niu/internal/js_lexer"
)

// PlaceholderPrefix starts every name this pass introduces.
const PlaceholderPrefix = "__niu_literal_"

// Hoist rewrites prog in place.
func Hoist(prog *js_ast.Program) {
	c := newCollector()
	c.collect(prog)

	phIndex := 0
	var hoistedStmts []js_ast.Stmt

	// ---- strings ----

	type strCand struct {
		uses *stringUses
		dec  costmodel.StringDecision
	}
	var candidates []strCand
	for _, value := range c.strOrder {
		su := c.strings[value]
		dec := costmodel.SelectiveStringProfit(value,
			len(su.literals), len(su.dots), len(su.keyProps)+len(su.members), 1, false)
		if dec.Effective < 2 {
			continue
		}
		// −2 admits marginal candidates that pay off once packed
		if dec.Profit <= -2 {
			continue
		}
		candidates = append(candidates, strCand{su, dec})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dec.Effective > candidates[j].dec.Effective
	})

	profitable := candidates[:0:0]
	for _, cand := range candidates {
		if cand.dec.Profit > 0 {
			profitable = append(profitable, cand)
		}
	}

	var selected []strCand
	switch {
	case len(profitable) >= splitPackMin:
		selected = profitable
	case len(candidates) >= splitPackMin:
		selected = candidates // marginal ones earn their keep inside the pack
	default:
		selected = profitable
	}

	packDelim := ""
	usePack := false
	var packValues []string
	if len(selected) >= splitPackMin {
		values := make([]string, len(selected))
		reprs := make([]int, len(selected))
		for i, cand := range selected {
			values[i] = cand.uses.value
			reprs[i] = costmodel.StringRepr(cand.uses.value)
		}
		if delim, ok := chooseDelimiter(values); ok {
			packed := strings.Join(values, delim)
			if costmodel.SplitCost(len(selected), 1, costmodel.StringRepr(packed)) < costmodel.MultiConstCost(reprs, 1) {
				usePack = true
				packDelim = delim
				packValues = values
			}
		}
	}

	if !usePack {
		// Without packing only individually profitable strings survive,
		// and the first one emitted must also recoup the "const " keyword
		// by itself; candidates too small for that slot are deferred
		// behind one that is large enough.
		var kept, deferred []strCand
		for _, cand := range profitable {
			if len(kept) == 0 && cand.dec.Profit-5 <= 0 {
				deferred = append(deferred, cand)
				continue
			}
			kept = append(kept, cand)
		}
		if len(kept) > 0 {
			kept = append(kept, deferred...)
		}
		selected = kept
	}

	if len(selected) > 0 {
		placeholders := make([]string, len(selected))
		for i, cand := range selected {
			placeholder := fmt.Sprintf("%s%d__", PlaceholderPrefix, phIndex)
			phIndex++
			placeholders[i] = placeholder
			rewriteString(cand.uses, cand.dec, placeholder)
		}
		if usePack {
			hoistedStmts = append(hoistedStmts, packStmt(packValues, placeholders, packDelim))
		} else {
			decls := make([]js_ast.Declarator, len(selected))
			for i, cand := range selected {
				decls[i] = declarator(placeholders[i], &js_ast.EString{Value: cand.uses.value})
			}
			hoistedStmts = append(hoistedStmts, js_ast.Stmt{Data: &js_ast.SVar{Kind: js_ast.DeclConst, Decls: decls}})
		}
	}

	// ---- non-strings ----

	var decls []js_ast.Declarator
	for _, key := range c.litOrder {
		lu := c.literals[key]
		n := len(lu.nodes)
		if n < 2 {
			continue
		}
		if key.kind == litNumber && lu.repr <= 2 {
			continue // "7" or "42" can never beat a binding plus declaration
		}
		if costmodel.LiteralHoistProfit(n, lu.repr, 1, false) <= 0 {
			continue
		}
		placeholder := fmt.Sprintf("%s%d__", PlaceholderPrefix, phIndex)
		phIndex++
		for _, node := range lu.nodes {
			node.Data = &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: placeholder}}
		}
		decls = append(decls, declarator(placeholder, key.exprData()))
	}
	if len(decls) > 0 {
		hoistedStmts = append(hoistedStmts, js_ast.Stmt{Data: &js_ast.SVar{Kind: js_ast.DeclConst, Decls: decls}})
	}

	if len(hoistedStmts) > 0 {
		prog.PrependStmts(hoistedStmts...)
	}
}

// splitPackMin is the binding count at which the fixed overhead of
// "let[...]=" plus ".split(...)" is worth considering.
const splitPackMin = 7

func declarator(name string, value js_ast.ExprData) js_ast.Declarator {
	expr := js_ast.Expr{Data: value}
	return js_ast.Declarator{
		Binding: js_ast.Pattern{Data: &js_ast.PIdentifier{Ident: &js_ast.Ident{Name: name}}},
		Value:   &expr,
	}
}

// packStmt builds `let[a,b,...]="v0Dv1D...".split("D")`.
func packStmt(values, placeholders []string, delim string) js_ast.Stmt {
	items := make([]js_ast.ArrayPatternItem, len(placeholders))
	for i, name := range placeholders {
		items[i] = js_ast.ArrayPatternItem{
			Pattern: js_ast.Pattern{Data: &js_ast.PIdentifier{Ident: &js_ast.Ident{Name: name}}},
		}
	}
	call := js_ast.Expr{Data: &js_ast.ECall{
		Target: js_ast.Expr{Data: &js_ast.EDot{
			Target: js_ast.Expr{Data: &js_ast.EString{Value: strings.Join(values, delim)}},
			Name:   js_ast.PropName{Name: "split"},
		}},
		Args: []js_ast.ArrayItem{{Value: js_ast.Expr{Data: &js_ast.EString{Value: delim}}}},
	}}
	return js_ast.Stmt{Data: &js_ast.SVar{
		Kind: js_ast.DeclLet,
		Decls: []js_ast.Declarator{{
			Binding: js_ast.Pattern{Data: &js_ast.PArray{Items: items}},
			Value:   &call,
		}},
	}}
}

// preferredDelims is tried first; any later printable ASCII byte that
// needs no escaping inside a double-quoted string works as a fallback.
const preferredDelims = ",;:|!@#$%^&*~`<>?/-_=+.()[]{}"

func chooseDelimiter(values []string) (string, bool) {
	usable := func(c byte) bool {
		for _, v := range values {
			if strings.IndexByte(v, c) >= 0 {
				return false
			}
		}
		return true
	}
	for i := 0; i < len(preferredDelims); i++ {
		if usable(preferredDelims[i]) {
			return string(preferredDelims[i]), true
		}
	}
	for c := byte(' '); c <= '~'; c++ {
		if c == '"' || c == '\'' || c == '\\' {
			continue
		}
		if usable(c) {
			return string(c), true
		}
	}
	return "", false
}

// rewriteString applies a string decision: only the categories whose
// per-occurrence gate passed are touched.
func rewriteString(su *stringUses, dec costmodel.StringDecision, placeholder string) {
	ident := func() js_ast.Expr {
		return js_ast.Expr{Data: &js_ast.EIdentifier{Ident: &js_ast.Ident{Name: placeholder}}}
	}
	if dec.HoistLiterals {
		for _, e := range su.literals {
			e.Data = ident().Data
		}
	}
	if dec.HoistAccess {
		for _, e := range su.dots {
			dot := e.Data.(*js_ast.EDot)
			e.Data = &js_ast.EIndex{Target: dot.Target, Index: ident(), Optional: dot.Optional}
		}
	}
	if dec.HoistKeys {
		for _, prop := range su.keyProps {
			prop.Computed = true
			prop.Key = ident()
		}
		for _, member := range su.members {
			member.Computed = true
			member.Key = ident()
		}
	}
}

// ---- collection ----

type stringUses struct {
	value    string
	literals []*js_ast.Expr        // EString in expression position, incl. bracket indexes and computed keys
	dots     []*js_ast.Expr        // EDot nodes whose property is this name
	keyProps []*js_ast.Property    // non-computed identifier keys in object literals
	members  []*js_ast.ClassMember // non-computed identifier keys in class bodies
}

type litKind uint8

const (
	litNumber litKind = iota
	litBoolean
	litNull
	litUndefined
	litBigInt
)

// litKey identifies a non-string literal by kind and value.
type litKey struct {
	kind litKind
	num  float64
	str  string // bigint digits
	b    bool
}

func (k litKey) exprData() js_ast.ExprData {
	switch k.kind {
	case litNumber:
		return &js_ast.ENumber{Value: k.num}
	case litBoolean:
		return &js_ast.EBoolean{Value: k.b}
	case litNull:
		return &js_ast.ENull{}
	case litUndefined:
		return &js_ast.EUndefined{}
	default:
		return &js_ast.EBigInt{Value: k.str}
	}
}

type collector struct {
	strings  map[string]*stringUses
	strOrder []string
	literals map[litKey]*nonStringUses
	litOrder []litKey
}

type nonStringUses struct {
	repr  int
	nodes []*js_ast.Expr
}

func newCollector() *collector {
	return &collector{
		strings:  map[string]*stringUses{},
		literals: map[litKey]*nonStringUses{},
	}
}

func (c *collector) str(value string) *stringUses {
	su, ok := c.strings[value]
	if !ok {
		su = &stringUses{value: value}
		c.strings[value] = su
		c.strOrder = append(c.strOrder, value)
	}
	return su
}

func (c *collector) lit(key litKey, repr int, node *js_ast.Expr) {
	lu, ok := c.literals[key]
	if !ok {
		lu = &nonStringUses{repr: repr}
		c.literals[key] = lu
		c.litOrder = append(c.litOrder, key)
	}
	lu.nodes = append(lu.nodes, node)
}

func (c *collector) collect(prog *js_ast.Program) {
	var walkStmt func(*js_ast.Stmt)
	var walkExpr func(*js_ast.Expr)

	walkStmt = func(s *js_ast.Stmt) {
		if class, ok := s.Data.(*js_ast.SClass); ok {
			c.visitClass(class.Class, walkStmt, walkExpr)
			return
		}
		js_ast.WalkStmtChildren(s, walkStmt, walkExpr)
	}

	walkExpr = func(e *js_ast.Expr) {
		switch n := e.Data.(type) {
		case *js_ast.EString:
			c.str(n.Value).literals = append(c.str(n.Value).literals, e)
			return

		case *js_ast.ENumber:
			c.lit(litKey{kind: litNumber, num: n.Value}, costmodel.NumberRepr(n.Value), e)
			return

		case *js_ast.EBoolean:
			repr := costmodel.TrueRepr
			if !n.Value {
				repr = costmodel.FalseRepr
			}
			c.lit(litKey{kind: litBoolean, b: n.Value}, repr, e)
			return

		case *js_ast.ENull:
			c.lit(litKey{kind: litNull}, costmodel.NullRepr, e)
			return

		case *js_ast.EUndefined:
			c.lit(litKey{kind: litUndefined}, costmodel.UndefinedRepr, e)
			return

		case *js_ast.EBigInt:
			c.lit(litKey{kind: litBigInt, str: n.Value}, costmodel.BigIntRepr(n.Value), e)
			return

		case *js_ast.EDot:
			// "import.meta" is syntax; the property is untouchable
			if id, ok := n.Target.Data.(*js_ast.EIdentifier); !ok || id.Ident.Name != "import" || id.Ident.Ref != nil {
				if js_lexer.IsIdentifierName(n.Name.Name) {
					c.str(n.Name.Name).dots = append(c.str(n.Name.Name).dots, e)
				}
			}
			walkExpr(&n.Target)
			return

		case *js_ast.EObject:
			c.visitObject(n, walkStmt, walkExpr)
			return

		case *js_ast.EClass:
			c.visitClass(n.Class, walkStmt, walkExpr)
			return

		case *js_ast.EBinary:
			// "undefined" only counts in read positions; an assignment
			// target is a binder, not a value.
			if n.Op.IsAssign() {
				c.visitAssignTarget(&n.Left, walkExpr)
				walkExpr(&n.Right)
				return
			}

		case *js_ast.EUnary:
			if n.Op == js_ast.UnOpPreInc || n.Op == js_ast.UnOpPreDec ||
				n.Op == js_ast.UnOpPostInc || n.Op == js_ast.UnOpPostDec {
				c.visitAssignTarget(&n.Value, walkExpr)
				return
			}
		}
		js_ast.WalkExprChildren(e, walkStmt, walkExpr)
	}

	for i := range prog.Body {
		walkStmt(&prog.Body[i])
	}
}

// visitAssignTarget walks a write target. Member accesses still count
// (rewriting "obj.name=1" into "obj[x]=1" is sound); a bare "undefined"
// or an identifier is skipped, and destructuring targets recurse.
func (c *collector) visitAssignTarget(e *js_ast.Expr, walkExpr func(*js_ast.Expr)) {
	switch n := e.Data.(type) {
	case *js_ast.EUndefined, *js_ast.EIdentifier:
		// not a read
	case *js_ast.EArray:
		for i := range n.Items {
			if n.Items[i].Value.Data != nil {
				c.visitAssignTarget(&n.Items[i].Value, walkExpr)
			}
		}
	case *js_ast.ESpread:
		c.visitAssignTarget(&n.Value, walkExpr)
	case *js_ast.EParenthesized:
		c.visitAssignTarget(&n.Value, walkExpr)
	default:
		walkExpr(e)
	}
}

func (c *collector) visitObject(obj *js_ast.EObject, walkStmt func(*js_ast.Stmt), walkExpr func(*js_ast.Expr)) {
	for i := range obj.Properties {
		prop := &obj.Properties[i]
		if prop.Kind == js_ast.PropertySpread {
			walkExpr(&prop.Value)
			continue
		}
		if prop.Computed {
			walkExpr(&prop.Key)
		} else if prop.Kind == js_ast.PropertyNormal && !prop.Shorthand && prop.Fn == nil {
			if key, ok := prop.Key.Data.(*js_ast.EPropName); ok && js_lexer.IsIdentifierName(key.Name.Name) {
				c.str(key.Name.Name).keyProps = append(c.str(key.Name.Name).keyProps, prop)
			}
		}
		if prop.Fn != nil {
			js_ast.WalkFnChildren(prop.Fn, walkStmt, walkExpr)
		} else {
			walkExpr(&prop.Value)
		}
	}
}

func (c *collector) visitClass(class *js_ast.Class, walkStmt func(*js_ast.Stmt), walkExpr func(*js_ast.Expr)) {
	if class.SuperClass != nil {
		walkExpr(class.SuperClass)
	}
	for i := range class.Members {
		m := &class.Members[i]
		if m.Computed {
			walkExpr(&m.Key)
		} else if m.Kind != js_ast.MemberConstructor {
			// private names start with "#" and fail the identifier check
			if key, ok := m.Key.Data.(*js_ast.EPropName); ok && js_lexer.IsIdentifierName(key.Name.Name) {
				c.str(key.Name.Name).members = append(c.str(key.Name.Name).members, m)
			}
		}
		if m.Fn != nil {
			js_ast.WalkFnChildren(m.Fn, walkStmt, walkExpr)
		}
		if m.Value != nil {
			walkExpr(m.Value)
		}
	}
}
