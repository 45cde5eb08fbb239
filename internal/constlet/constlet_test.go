package constlet

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_parser"
	"github.com/nqminh/niu/internal/js_printer"
)

func rewriteAndPrint(t *testing.T, source string) string {
	t.Helper()
	prog, err := js_parser.Parse(diag.NewLog(""), source)
	if err != nil {
		t.Fatalf("parse error in %q: %v", source, err)
	}
	Rewrite(prog)
	return js_printer.Print(prog)
}

func TestRewrite(t *testing.T) {
	test.T(t, rewriteAndPrint(t, "const a=1;"), "let a=1;")
	test.T(t, rewriteAndPrint(t, "const a=1,b=2;"), "let a=1,b=2;")
	test.T(t, rewriteAndPrint(t, "let a=1;var b=2;"), "let a=1;var b=2;")
	test.T(t, rewriteAndPrint(t,
		"const a=1;function f(){const b=2;return()=>{const c=3;return b+c}}"),
		"let a=1;function f(){let b=2;return()=>{let c=3;return b+c;};}")
	test.T(t, rewriteAndPrint(t, "for(const k in o)f(k);"), "for(let k in o)f(k);")
	test.T(t, rewriteAndPrint(t, "export const x=1;"), "export let x=1;")
}
