package lithoist

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

func TestThreeCopiesBreakEven(t *testing.T) {
	// three "abc" never recoup the "const " keyword
	src := "x=\"abc\";y=\"abc\";z=\"abc\";"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestFourCopiesHoist(t *testing.T) {
	out := hoistAndPrint(t, "x=\"abc\";y=\"abc\";z=\"abc\";w=\"abc\";")
	test.T(t, out, "const __niu_literal_0__=\"abc\";"+
		"x=__niu_literal_0__;y=__niu_literal_0__;z=__niu_literal_0__;w=__niu_literal_0__;")
	test.T(t, strings.Count(out, "\"abc\""), 1)
}

func TestDotAccessGate(t *testing.T) {
	long := strings.Repeat("obj.something;", 10)
	out := hoistAndPrint(t, long)
	test.T(t, strings.Count(out, "\"something\""), 1)
	test.T(t, strings.Count(out, "obj[__niu_literal_0__]"), 10)

	short := strings.Repeat("obj.x;", 10)
	test.T(t, hoistAndPrint(t, short), short)
}

func TestBracketAndComputedKeysCountAsLiterals(t *testing.T) {
	out := hoistAndPrint(t, "a=o[\"key\"];b=o[\"key\"];c={[\"key\"]:1};d=\"key\";")
	test.T(t, strings.Count(out, "\"key\""), 1)
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=\"key\";"), "got "+out)
}

func TestIdentifierKeysBecomeComputed(t *testing.T) {
	// "longname" appears as a key three times and as a literal once
	out := hoistAndPrint(t, "a={longname:1};b={longname:2};c={longname:3};d=\"longname\";")
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=\"longname\";"), "got "+out)
	test.T(t, strings.Count(out, "[__niu_literal_0__]:"), 3)
	test.T(t, strings.Count(out, "\"longname\""), 1)
}

func TestClassMemberKeys(t *testing.T) {
	out := hoistAndPrint(t,
		"class A{methodname(){}}class B{methodname(){}}class C{methodname(){}}x=\"methodname\";")
	test.T(t, strings.Count(out, "[__niu_literal_0__](){}"), 3)
	test.T(t, strings.Count(out, "\"methodname\""), 1)
}

func TestConstructorIsNeverRewritten(t *testing.T) {
	src := "class A{constructor(){}}class B{constructor(){}}class C{constructor(){}}"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestSplitPacking(t *testing.T) {
	var sb strings.Builder
	values := []string{"key0", "key1", "key2", "key3", "key4", "key5", "key6"}
	for _, v := range values {
		for i := 0; i < 4; i++ {
			sb.WriteString("f(\"" + v + "\");")
		}
	}
	out := hoistAndPrint(t, sb.String())
	test.That(t, strings.Contains(out, ".split(\",\")"), "got "+out)
	test.That(t, strings.HasPrefix(out, "let[__niu_literal_0__,"), "got "+out)
	for _, v := range values {
		test.T(t, strings.Count(out, v), 1, "packed string must appear once")
	}
}

func TestSplitPackingDelimiterAvoidsContents(t *testing.T) {
	// every string contains a comma, so the packer falls back to ";"
	var sb strings.Builder
	for _, v := range []string{"a,0", "a,1", "a,2", "a,3", "a,4", "a,5", "a,6"} {
		for i := 0; i < 4; i++ {
			sb.WriteString("f(\"" + v + "\");")
		}
	}
	out := hoistAndPrint(t, sb.String())
	test.That(t, strings.Contains(out, ".split(\";\")"), "got "+out)
}

func TestDirectiveIsNotALiteral(t *testing.T) {
	out := hoistAndPrint(t, "\"use strict\";x=\"use strict\";y=\"use strict\";")
	// the two expression uses hoist, the directive stays first and
	// untouched
	test.That(t, strings.HasPrefix(out,
		"\"use strict\";const __niu_literal_0__=\"use strict\";"), "got "+out)
	test.T(t, strings.Count(out, "\"use strict\""), 2)
}

func TestImportPathIsUntouched(t *testing.T) {
	src := "import a from\"mod\";x=\"mod\";y=\"mod\";z=\"mod\";w=\"mod\";"
	out := hoistAndPrint(t, src)
	// the declaration is prepended ahead of the import; the path stays as written
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=\"mod\";import a from\"mod\";"), "got "+out)
	test.T(t, strings.Count(out, "\"mod\""), 2) // the path plus one hoisted declaration
}

func TestNumbers(t *testing.T) {
	out := hoistAndPrint(t, "x=12345;y=12345;z=12345;")
	test.T(t, out, "const __niu_literal_0__=12345;"+
		"x=__niu_literal_0__;y=__niu_literal_0__;z=__niu_literal_0__;")

	// one- and two-digit numbers can never win
	src := "x=42;y=42;z=42;w=42;"
	test.T(t, hoistAndPrint(t, src), src)
}

func TestBooleansAndNull(t *testing.T) {
	out := hoistAndPrint(t, "a(true);b(true);c(true);d(null,null,null,null);")
	test.That(t, strings.Contains(out, "=true"), "got "+out)
	test.That(t, strings.Contains(out, "=null"), "got "+out)
	test.T(t, strings.Count(out, "true"), 1)
	test.T(t, strings.Count(out, "null"), 1)
}

func TestBigInts(t *testing.T) {
	out := hoistAndPrint(t, "x=123456789n;y=123456789n;z=123456789n;")
	test.T(t, strings.Count(out, "123456789n"), 1)
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=123456789n;"), "got "+out)
}

func TestFirstDeclarationGateDefersSmallCandidates(t *testing.T) {
	// "something" recoups "const " by itself; "abc" rides along after it
	out := hoistAndPrint(t,
		"a=\"something\";b=\"something\";c=\"something\";d=\"something\";"+
			"x=\"abc\";y=\"abc\";z=\"abc\";")
	test.That(t, strings.HasPrefix(out,
		"const __niu_literal_0__=\"something\",__niu_literal_1__=\"abc\";"), "got "+out)
}

func TestMixedCategoriesShareOneBinding(t *testing.T) {
	// literal, dot access, and identifier key uses of one string all
	// collapse onto a single hoisted binding
	out := hoistAndPrint(t,
		"a=\"payload\";b=\"payload\";o.payload;p.payload;x={payload:1};y={payload:2};")
	test.That(t, strings.HasPrefix(out, "const __niu_literal_0__=\"payload\";"), "got "+out)
	test.T(t, strings.Count(out, "\"payload\""), 1)
	test.T(t, strings.Count(out, "o[__niu_literal_0__]"), 1)
	test.T(t, strings.Count(out, "[__niu_literal_0__]:"), 2)
}
