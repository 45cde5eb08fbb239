package globalhoist

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_parser"
	"github.com/nqminh/niu/internal/js_printer"
	"github.com/nqminh/niu/internal/scope"
)

func hoistAndPrint(t *testing.T, source string) string {
	t.Helper()
	prog, err := js_parser.Parse(diag.NewLog(""), source)
	if err != nil {
		t.Fatalf("parse error in %q: %v", source, err)
	}
	scope.Analyze(prog)
	Hoist(prog)
	return js_printer.Print(prog)
}

func TestHoistsRepeatedDotAccess(t *testing.T) {
	out := hoistAndPrint(t, "a=Math.floor(1);b=Math.ceil(2);c=Math.round(3);")
	test.T(t, out, "const __niu_global_0__=Math;"+
		"a=__niu_global_0__.floor(1);b=__niu_global_0__.ceil(2);c=__niu_global_0__.round(3);")
}

func TestTwoShortUsesAreNotWorthIt(t *testing.T) {
	src := "a=Math.floor(1);b=Math.ceil(2);"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestTwoLongUsesAre(t *testing.T) {
	out := hoistAndPrint(t, "a=new XMLHttpRequest.prototype.constructor;b=XMLHttpRequest.UNSENT;")
	test.That(t, strings.HasPrefix(out, "const __niu_global_0__=XMLHttpRequest;"), "got "+out)
}

func TestTypeofGuardedGlobalIsLeftAlone(t *testing.T) {
	src := "typeof G!==\"undefined\"&&G.a();typeof G!==\"undefined\"&&G.b();typeof G!==\"undefined\"&&G.c();"
	out := hoistAndPrint(t, src)
	test.T(t, out, src)
	test.That(t, !strings.Contains(out, "=G;"))
}

func TestLocalShadowIsNotAGlobal(t *testing.T) {
	// Math is a local here; there is nothing free to hoist
	src := "function f(Math){a=Math.floor(1);b=Math.ceil(2);c=Math.round(3);}"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestMostUsedGlobalGetsTheFirstPlaceholder(t *testing.T) {
	out := hoistAndPrint(t,
		"a=JSON.parse(x);b=JSON.parse(y);c=JSON.parse(z);"+
			"d=Object.keys(p);e=Object.keys(q);f=Object.keys(r);g=Object.keys(s);")
	test.That(t, strings.HasPrefix(out, "const __niu_global_0__=Object,__niu_global_1__=JSON;"), "got "+out)
}

func TestDirectivePrologueStaysFirst(t *testing.T) {
	out := hoistAndPrint(t, "\"use strict\";a=Math.floor(1);b=Math.ceil(2);c=Math.round(3);")
	test.That(t, strings.HasPrefix(out, "\"use strict\";const __niu_global_0__=Math;"), "got "+out)
}
