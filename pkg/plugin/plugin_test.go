package plugin

import (
	"regexp"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/nqminh/niu"
)

func TestDefaultInclude(t *testing.T) {
	p := New(Options{})
	test.That(t, p.Matches("chunk.js"))
	test.That(t, p.Matches("chunk.mjs"))
	test.That(t, p.Matches("chunk.cjs"))
	test.That(t, !p.Matches("style.css"))
	test.That(t, !p.Matches("chunk.js.map"))
}

func TestExclude(t *testing.T) {
	p := New(Options{Exclude: regexp.MustCompile(`^vendor/`)})
	test.That(t, p.Matches("app/main.js"))
	test.That(t, !p.Matches("vendor/lib.js"))
}

func TestRenderChunk(t *testing.T) {
	p := New(Options{Minify: niu.Options{HoistDuplicateLiterals: true}})

	code, changed, err := p.RenderChunk("x=\"abc\";y=\"abc\";z=\"abc\";w=\"abc\";", "chunk.js")
	if err != nil {
		t.Fatal(err)
	}
	test.That(t, changed)
	test.T(t, strings.Count(code, "\"abc\""), 1)

	code, changed, err = p.RenderChunk("not even javascript {", "style.css")
	if err != nil {
		t.Fatal(err)
	}
	test.That(t, !changed)
	test.T(t, code, "not even javascript {")
}

func TestRenderChunkSurfacesParseErrors(t *testing.T) {
	p := New(Options{})
	_, _, err := p.RenderChunk("const", "broken.js")
	test.That(t, err != nil, "malformed chunks must fail loudly")
}
