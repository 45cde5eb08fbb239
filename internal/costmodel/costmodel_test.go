package costmodel

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestReprLengths(t *testing.T) {
	test.T(t, StringRepr("abc"), 5)
	test.T(t, StringRepr(`a"b`), 6)
	test.T(t, StringRepr("a\nb"), 6)
	test.T(t, NumberRepr(12345), 5)
	test.T(t, NumberRepr(1000000), 3) // 1e6
	test.T(t, BigIntRepr("123"), 4)
}

func TestDeclCost(t *testing.T) {
	// const x="abc"
	test.T(t, DeclCost(5, 1, true), 13)
	// ,x="abc"
	test.T(t, DeclCost(5, 1, false), 8)
}

func TestLiteralHoistProfit(t *testing.T) {
	// "abc" three times: pays off only without the "const " keyword
	test.T(t, LiteralHoistProfit(3, 5, 1, false), 4)
	test.T(t, LiteralHoistProfit(3, 5, 1, true), -1)
	test.T(t, LiteralHoistProfit(4, 5, 1, true), 3)
}

func TestGlobalHoistProfit(t *testing.T) {
	// Math: pays off at three dot uses, not at two
	test.T(t, GlobalHoistProfit(3, 4, 1, false), 2)
	test.T(t, GlobalHoistProfit(2, 4, 1, false), -1)
}

func TestGates(t *testing.T) {
	test.That(t, !DotAccessGate(1, 1), "single-char dot access never pays")
	test.That(t, !DotAccessGate(2, 1))
	test.That(t, DotAccessGate(3, 1))
	test.That(t, !KeyGate(3, 1))
	test.That(t, KeyGate(4, 1))
}

func TestSelectiveStringProfit(t *testing.T) {
	// ten obj.something accesses
	dec := SelectiveStringProfit("something", 0, 10, 0, 1, false)
	test.T(t, dec.Profit, 56)
	test.T(t, dec.Effective, 10)
	test.That(t, dec.HoistAccess)
	test.That(t, !dec.HoistLiterals)
	test.That(t, !dec.HoistKeys)

	// obj.x fails the per-occurrence gate entirely
	dec = SelectiveStringProfit("x", 0, 10, 0, 1, false)
	test.T(t, dec.Effective, 0)
	test.That(t, !dec.HoistAccess)

	// mixed: four literals plus two short-gated keys keep only literals
	dec = SelectiveStringProfit("abc", 4, 0, 2, 1, false)
	test.T(t, dec.Effective, 4)
	test.T(t, dec.Profit, 8)
	test.That(t, dec.HoistLiterals)
	test.That(t, !dec.HoistKeys)
}

func TestSplitVersusConst(t *testing.T) {
	// seven 6-byte strings: packing wins by two bytes
	reprs := []int{8, 8, 8, 8, 8, 8, 8}
	packedRepr := 2 + 7*6 + 6 // quotes, values, delimiters
	test.T(t, SplitCost(7, 1, packedRepr), 80)
	test.T(t, MultiConstCost(reprs, 1), 82)
}
