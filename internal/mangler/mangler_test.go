package mangler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/js_lexer"
	"github.com/nqminh/niu/internal/js_parser"
	"github.com/nqminh/niu/internal/js_printer"
	"github.com/nqminh/niu/internal/scope"
)

func mangleAndPrint(t *testing.T, source string) string {
	t.Helper()
	prog, err := js_parser.Parse(diag.NewLog(""), source)
	if err != nil {
		t.Fatalf("parse error in %q: %v", source, err)
	}
	scope.Analyze(prog)
	Mangle(prog)
	return js_printer.Print(prog)
}

func TestNumberToName(t *testing.T) {
	test.T(t, NumberToName(0), "e")
	test.T(t, NumberToName(1), "t")
	test.T(t, NumberToName(25), "z")
	test.T(t, NumberToName(26), "E")
	test.T(t, NumberToName(52), "$")
	test.T(t, NumberToName(53), "_")
	test.T(t, NumberToName(54), "ee")
	test.T(t, NumberToName(55), "et")
	test.T(t, NumberToName(54+54), "te")
}

func TestNumberToNameIsInjective(t *testing.T) {
	seen := map[string]int{}
	for i := 0; i < 10000; i++ {
		name := NumberToName(i)
		if prev, ok := seen[name]; ok {
			t.Fatalf("indexes %d and %d both map to %q", prev, i, name)
		}
		seen[name] = i
		if !js_lexer.IsIdentifierName(name) {
			t.Fatalf("index %d maps to invalid identifier %q", i, name)
		}
	}
}

func TestFrequencyOrdering(t *testing.T) {
	out := mangleAndPrint(t,
		"function q(ppp,qqq){ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();qqq()}")
	test.T(t, out, "function e(e,t){e();e();e();e();e();e();e();e();e();e();t();}")
}

func TestOuterBindingUsedInsideIsReserved(t *testing.T) {
	out := mangleAndPrint(t, "var xxx=1;function fff(yyy){return xxx+yyy}")
	// xxx has two uses and wins "e"; inside the function its name stays
	// visible, so the parameter skips "e"
	test.T(t, out, "var e=1;function t(t){return e+t;}")
}

func TestUnusedOuterNameCanBeShadowed(t *testing.T) {
	out := mangleAndPrint(t, "var aaa=1,bbb=2;aaa;aaa;function f(){var ccc=3;return ccc}")
	// ccc may reuse "e" because neither aaa nor f is referenced inside f
	test.That(t, strings.Contains(out, "function a(){var e=3;return e;}"), "got "+out)
}

func TestGlobalNamesAreNeverTaken(t *testing.T) {
	out := mangleAndPrint(t, "var vvv=1;e(vvv);e(vvv)")
	// the free global e blocks the name "e"
	test.T(t, out, "var t=1;e(t);e(t);")
}

func TestMangleSkipsReservedWords(t *testing.T) {
	// the raw sequence does produce reserved words eventually
	test.T(t, NumberToName(328), "in")

	// 400 bindings in one scope walk the sequence well past "in"; the
	// declared names in the output must skip every reserved word
	var sb strings.Builder
	sb.WriteString("function f(){")
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&sb, "var v%03d;", i)
	}
	sb.WriteString("}")
	out := mangleAndPrint(t, sb.String())
	for _, chunk := range strings.Split(out, "var ")[1:] {
		name := chunk[:strings.IndexByte(chunk, ';')]
		if js_lexer.ReservedWords[name] {
			t.Fatalf("reserved word %q leaked into output", name)
		}
	}
	if !strings.Contains(out, "var e;") {
		t.Fatalf("expected the first binding to become e, got %.80s", out)
	}
}

func TestExportedNamesAreKept(t *testing.T) {
	out := mangleAndPrint(t, "export const apiUrl=\"u\";function fff(){return apiUrl}fff();fff()")
	test.That(t, strings.Contains(out, "export const apiUrl=\"u\";"), "got "+out)
	test.That(t, strings.Contains(out, "function e(){return apiUrl;}e();e();"), "got "+out)
}

func TestImportLocalsAreRenamedBehindAliases(t *testing.T) {
	out := mangleAndPrint(t, "import{deepEqual}from\"assert\";deepEqual(1);deepEqual(2)")
	test.T(t, out, "import{deepEqual as e}from\"assert\";e(1);e(2);")
}

func TestPlaceholderSweep(t *testing.T) {
	out := mangleAndPrint(t, "const __niu_literal_0__=\"hello\";f(__niu_literal_0__);f(__niu_literal_0__)")
	test.That(t, !strings.Contains(out, "__niu_"), "got "+out)
	test.That(t, strings.HasPrefix(out, "const e=\"hello\";"), "got "+out)
}
