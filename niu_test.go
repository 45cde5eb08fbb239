package niu

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func minifyAll(t *testing.T, source string) string {
	t.Helper()
	result, err := Minify(source, Options{
		HoistGlobals:           true,
		HoistDuplicateLiterals: true,
	})
	if err != nil {
		t.Fatalf("minify error in %q: %v", source, err)
	}
	return result.Code
}

func TestStringHoistBreakEven(t *testing.T) {
	// three copies break even: nothing changes on net
	out := minifyAll(t, "x=\"abc\";y=\"abc\";z=\"abc\"")
	test.T(t, strings.Count(out, "\"abc\""), 3)

	// four copies leave exactly one, inside the hoisted declaration
	out = minifyAll(t, "x=\"abc\";y=\"abc\";z=\"abc\";w=\"abc\"")
	test.T(t, strings.Count(out, "\"abc\""), 1)
	test.That(t, regexp.MustCompile(`^const [a-zA-Z]="abc"`).MatchString(out), "got "+out)
}

func TestFiveCopyLiteral(t *testing.T) {
	out := minifyAll(t, strings.Repeat("console.log(\"hello\");", 5))
	test.That(t, regexp.MustCompile(`^const [a-zA-Z]="hello"`).MatchString(out), "got "+out)
	test.T(t, strings.Count(out, "\"hello\""), 1)
}

func TestDotAccessGate(t *testing.T) {
	result, err := Minify(strings.Repeat("obj.something;", 10), Options{HoistDuplicateLiterals: true})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Code
	test.T(t, strings.Count(out, "\"something\""), 1)
	test.T(t, strings.Count(out, "obj["), 10)

	result, err = Minify(strings.Repeat("obj.x;", 10), Options{HoistDuplicateLiterals: true})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, strings.Count(result.Code, "obj.x"), 10)
}

func TestSplitPackingTrigger(t *testing.T) {
	var sb strings.Builder
	values := []string{"key0", "key1", "key2", "key3", "key4", "key5", "key6"}
	for _, v := range values {
		for i := 0; i < 4; i++ {
			sb.WriteString("f(\"" + v + "\");")
		}
	}
	out := minifyAll(t, sb.String())
	test.That(t, strings.Contains(out, ".split("), "got "+out)
	for _, v := range values {
		test.T(t, strings.Count(out, v), 1, "each string must appear once, inside the packed literal")
	}
}

func TestTypeofGuardedGlobal(t *testing.T) {
	out := minifyAll(t, strings.Repeat("typeof G!==\"undefined\"&&G.foo();", 3))
	test.That(t, strings.Contains(out, "typeof G"), "got "+out)
	test.That(t, !strings.Contains(out, "=G;"), "got "+out)
	test.That(t, !strings.Contains(out, "=G,"), "got "+out)
}

func TestManglingByFrequency(t *testing.T) {
	out := minifyAll(t,
		"function q(ppp,qqq){ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();ppp();qqq()}")
	test.T(t, out, "function e(e,t){e();e();e();e();e();e();e();e();e();e();t();}")
}

func TestNoPlaceholderLeakage(t *testing.T) {
	inputs := []string{
		"x=\"abc\";y=\"abc\";z=\"abc\";w=\"abc\"",
		strings.Repeat("console.log(\"hello\");", 5),
		strings.Repeat("obj.something;", 10),
		"a=Math.floor(1);b=Math.ceil(2);c=Math.round(3);",
	}
	for _, input := range inputs {
		out := minifyAll(t, input)
		test.That(t, !strings.Contains(out, "__niu_"), "placeholder leaked in "+out)
	}
}

func TestIdempotenceBound(t *testing.T) {
	inputs := []string{
		"x=\"abc\";y=\"abc\";z=\"abc\";w=\"abc\"",
		strings.Repeat("console.log(\"hello\");", 5),
		"function q(ppp,qqq){ppp();qqq();ppp()}",
	}
	for _, input := range inputs {
		once := minifyAll(t, input)
		twice := minifyAll(t, once)
		if len(twice) > len(once) {
			t.Fatalf("second run grew the output: %d > %d in %q", len(twice), len(once), input)
		}
	}
}

func TestConstsToLets(t *testing.T) {
	result, err := Minify("const aaa=1;f(aaa);f(aaa)", Options{ConstsToLets: true})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, result.Code, "let e=1;f(e);f(e);")
}

func TestParseErrorSurfaces(t *testing.T) {
	_, err := Minify("const", Options{})
	test.That(t, err != nil, "malformed input must fail")
}

func TestExternalPrePass(t *testing.T) {
	calls := 0
	result, err := Minify("ignored original", Options{
		TerserOptions: map[string]bool{"compress": true},
		ExternalMinifier: func(source string, options any) (string, error) {
			calls++
			return "x=1", nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, calls, 1)
	test.T(t, result.Code, "x=1;")
}

func TestExternalPrePassFailureFallsBack(t *testing.T) {
	result, err := Minify("x=2", Options{
		TerserOptions: struct{}{},
		ExternalMinifier: func(string, any) (string, error) {
			return "", errors.New("minifier exploded")
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, result.Code, "x=2;")
}

func TestExternalPrePassRetries(t *testing.T) {
	calls := 0
	result, err := Minify("x=3", Options{
		TerserOptions: struct{}{},
		ExternalMinifier: func(string, any) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "y=4", nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, calls, 3)
	test.T(t, result.Code, "y=4;")
}

func TestPrePassSkippedWithoutOptions(t *testing.T) {
	result, err := Minify("x=5", Options{
		ExternalMinifier: func(string, any) (string, error) {
			t.Fatal("pre-pass must not run without TerserOptions")
			return "", nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	test.T(t, result.Code, "x=5;")
}
