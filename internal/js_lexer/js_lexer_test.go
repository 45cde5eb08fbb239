package js_lexer

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/nqminh/niu/internal/diag"
)

func lexTokens(t *testing.T, source string) []T {
	t.Helper()
	l := New(diag.NewLog(""), source)
	var tokens []T
	for l.Token != TEndOfFile {
		tokens = append(tokens, l.Token)
		l.Next()
	}
	return tokens
}

func TestPunctuation(t *testing.T) {
	tokens := lexTokens(t, "a??=b>>>=c?.d")
	expected := []T{TIdentifier, TQuestionQuestionEquals, TIdentifier,
		TGreaterThanGreaterThanGreaterThanEquals, TIdentifier, TQuestionDot, TIdentifier}
	test.T(t, len(tokens), len(expected))
	for i := range expected {
		test.T(t, tokens[i], expected[i])
	}
}

func TestCommentsAndNewlines(t *testing.T) {
	l := New(diag.NewLog(""), "a // one\n/* two */ b")
	test.T(t, l.Token, TIdentifier)
	test.T(t, l.Identifier, "a")
	l.Next()
	test.T(t, l.Identifier, "b")
	test.That(t, l.HasNewlineBefore, "newline inside skipped trivia must be seen")
}

func TestStringDecoding(t *testing.T) {
	l := New(diag.NewLog(""), `"a\n\x41B\u{43}"`)
	test.T(t, l.Token, TStringLiteral)
	test.T(t, l.StringLiteral, "a\nABC")
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		source string
		value  float64
	}{
		{"123", 123},
		{"1.5", 1.5},
		{".5", 0.5},
		{"1e3", 1000},
		{"0xff", 255},
		{"0b101", 5},
		{"0o17", 15},
		{"1_000", 1000},
	}
	for _, c := range cases {
		l := New(diag.NewLog(""), c.source)
		test.T(t, l.Token, TNumericLiteral, "in "+c.source)
		test.T(t, l.Number, c.value, "in "+c.source)
	}
}

func TestBigInt(t *testing.T) {
	l := New(diag.NewLog(""), "123n")
	test.T(t, l.Token, TBigIntLiteral)
	test.T(t, l.StringLiteral, "123")
}

func TestTemplatePieces(t *testing.T) {
	l := New(diag.NewLog(""), "`a${x}b`")
	test.T(t, l.Token, TTemplateHead)
	test.T(t, l.StringLiteral, "a")
	l.Next()
	test.T(t, l.Token, TIdentifier)
	l.Next()
	test.T(t, l.Token, TCloseBrace)
	l.RescanCloseBraceAsTemplateToken()
	test.T(t, l.Token, TTemplateTail)
	test.T(t, l.StringLiteral, "b")

	l = New(diag.NewLog(""), "`plain`")
	test.T(t, l.Token, TNoSubstitutionTemplateLiteral)
	test.T(t, l.StringLiteral, "plain")
}

func TestRegExpRescan(t *testing.T) {
	l := New(diag.NewLog(""), "/a[/]b/gi ")
	test.T(t, l.Token, TSlash)
	l.ScanRegExp()
	test.T(t, l.Token, TRegExpLiteral)
	test.T(t, l.StringLiteral, "/a[/]b/gi")
}

func TestJSXRawScan(t *testing.T) {
	l := New(diag.NewLog(""), `<div a="x"><b/>{y}</div>;z`)
	test.T(t, l.Token, TLessThan)
	raw := l.ScanJSXRaw()
	test.T(t, raw, `<div a="x"><b/>{y}</div>`)
	test.T(t, l.Token, TSemicolon)
}

func TestIsIdentifierName(t *testing.T) {
	test.That(t, IsIdentifierName("abc"))
	test.That(t, IsIdentifierName("$_a1"))
	test.That(t, !IsIdentifierName("1a"))
	test.That(t, !IsIdentifierName("a-b"))
	test.That(t, !IsIdentifierName(""))
	test.That(t, !IsIdentifierName("#priv"))
}
