// Package costmodel is the byte accounting shared by the hoisting
// passes. Every function is pure arithmetic over the compact printed
// form: positive results are bytes saved, negative results bytes added.
// String representations are sized with the same quoting function the
// printer emits with, so the numbers here are exact, not estimates.
package costmodel

import "github.com/nqminh/niu/internal/js_printer"

// Representation lengths of the hoistable literal kinds.
const (
	TrueRepr      = 4
	FalseRepr     = 5
	NullRepr      = 4
	UndefinedRepr = 9
)

// StringRepr is the printed length of a string literal, quotes and
// escapes included.
func StringRepr(value string) int {
	return len(js_printer.QuoteJSON(value))
}

// NumberRepr is the printed length of a number literal in its shortest
// form.
func NumberRepr(value float64) int {
	return len(js_printer.FormatNumber(value))
}

// BigIntRepr is the printed length of a bigint literal: its digits plus
// the "n" suffix.
func BigIntRepr(digits string) int {
	return len(digits) + 1
}

// DeclCost is the cost of one declarator holding a value of
// representation length repr under a binding of length id. The first
// declarator pays for the "const " keyword ("const x=v"); every later
// one rides the same declaration (",x=v").
func DeclCost(repr, id int, first bool) int {
	if first {
		return 6 + id + 1 + repr
	}
	return 1 + id + 1 + repr
}

// LiteralHoistProfit is the saving from replacing n occurrences of a
// literal of representation length repr with an id-length binding.
func LiteralHoistProfit(n, repr, id int, first bool) int {
	return n*repr - DeclCost(repr, id, first) - n*id
}

// GlobalHoistProfit is the saving from binding a free global of name
// length nameLen and replacing n of its uses. Globals hoist verbatim,
// without quoting.
func GlobalHoistProfit(n, nameLen, id int, first bool) int {
	return n*nameLen - DeclCost(nameLen, id, first) - n*id
}

// DotAccessGate reports whether rewriting ".name" into "[x]" pays for
// itself per occurrence: the name must outweigh the brackets.
func DotAccessGate(nameLen, id int) bool {
	return nameLen > 1+id
}

// KeyGate is the per-occurrence gate for rewriting an identifier key
// "name:" into a computed "[x]:".
func KeyGate(nameLen, id int) bool {
	return nameLen > 2+id
}

// StringDecision is the outcome of SelectiveStringProfit: the total
// saving and which use categories are worth rewriting.
type StringDecision struct {
	Profit        int
	Effective     int // occurrences in categories that passed their gate
	HoistLiterals bool
	HoistAccess   bool
	HoistKeys     bool
}

// SelectiveStringProfit decides, for one string value, which of its use
// categories to rewrite: literal-shaped uses (plain literals, bracket
// indexes, computed keys), dot accesses, and identifier keys. Categories
// whose per-occurrence gate fails are zeroed first, so a short string
// can still hoist as a literal even when its property uses are not worth
// touching.
func SelectiveStringProfit(value string, literals, accesses, keys, id int, first bool) StringDecision {
	repr := StringRepr(value)
	nameLen := len(value)

	if !DotAccessGate(nameLen, id) {
		accesses = 0
	}
	if !KeyGate(nameLen, id) {
		keys = 0
	}

	before := literals*repr + accesses*(1+nameLen) + keys*nameLen
	after := DeclCost(repr, id, first) + literals*id + (accesses+keys)*(2+id)

	return StringDecision{
		Profit:        before - after,
		Effective:     literals + accesses + keys,
		HoistLiterals: literals > 0,
		HoistAccess:   accesses > 0,
		HoistKeys:     keys > 0,
	}
}

// SplitCost is the printed length of the packed emission
// `let[a,b,...]="v0Dv1D...".split("D")` for numBindings bindings of
// length id and a packed string of representation length packedRepr.
func SplitCost(numBindings, id, packedRepr int) int {
	ids := numBindings*id + (numBindings - 1)
	return len("let[") + ids + len("]=") + packedRepr + len(".split(") + 3 + len(")")
}

// MultiConstCost is the printed length of the equivalent multi-declarator
// const statement, reprs being each binding's value representation
// length.
func MultiConstCost(reprs []int, id int) int {
	total := 0
	for i, repr := range reprs {
		total += DeclCost(repr, id, i == 0)
	}
	return total
}
