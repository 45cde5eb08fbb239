package lithoist

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

// The rules for collecting "undefined" are a positive list: only clear
// read positions count. Everything that binds, writes, or merely names
// something is excluded.

func TestUndefinedReadsHoist(t *testing.T) {
	out := hoistAndPrint(t, "a=undefined;b=undefined;")
	test.T(t, out, "const __niu_literal_0__=undefined;"+
		"a=__niu_literal_0__;b=__niu_literal_0__;")
}

func TestUndefinedInCallsAndReturns(t *testing.T) {
	out := hoistAndPrint(t, "f(undefined);g(undefined);h=x===undefined;")
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=undefined;"), "got "+out)
	test.T(t, strings.Count(out, "undefined"), 1)
}

func TestUndefinedAssignmentTargetIsNotARead(t *testing.T) {
	// sloppy-mode code may assign to undefined; the write targets must
	// survive untouched even while the read hoists
	src := "undefined=1;undefined=2;a=undefined;b=undefined;c=undefined;"
	out := hoistAndPrint(t, src)
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=undefined;undefined=1;undefined=2;"), "got "+out)
}

func TestUndefinedObjectKeyIsAName(t *testing.T) {
	// {undefined: v} keys are property names; two of them are not worth
	// a declaration and must stay put
	src := "x={undefined:1};y={undefined:2};"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestUndefinedPatternKeyIsAName(t *testing.T) {
	// in {undefined:u} the key names the property being read; u is the
	// binder, so the key is not a read of undefined
	src := "var{undefined:u}=o;w=u;"
	test.T(t, hoistAndPrint(t, src), src)
}
