// Package niu is a post-process JavaScript minifier. It assumes its
// input is already conventionally minified (optionally running an
// external general-purpose minifier as a pre-pass) and then squeezes
// further bytes out with rewrites a general-purpose minifier does not
// attempt: hoisting repeatedly dot-accessed globals and repeated
// literals into short bindings, renaming every local to the shortest
// name its scope allows, and optionally flipping const to let.
package niu

import (
	"github.com/matryer/try"

	"github.com/nqminh/niu/internal/constlet"
	"github.com/nqminh/niu/internal/diag"
	"github.com/nqminh/niu/internal/globalhoist"
	"github.com/nqminh/niu/internal/js_parser"
	"github.com/nqminh/niu/internal/js_printer"
	"github.com/nqminh/niu/internal/lithoist"
	"github.com/nqminh/niu/internal/mangler"
	"github.com/nqminh/niu/internal/scope"
)

// ExternalMinifier is an opaque string-to-string pre-pass, typically a
// binding to a general-purpose minifier running elsewhere. A failure or
// an empty result is not fatal: the original source is used instead.
type ExternalMinifier func(source string, options any) (string, error)

// Options selects which rewrite passes run. Identifier mangling is
// always on; it is what turns the hoist placeholders into names short
// enough to pay off.
type Options struct {
	// TerserOptions is handed verbatim to ExternalMinifier. The pre-pass
	// only runs when both are set.
	TerserOptions    any
	ExternalMinifier ExternalMinifier

	HoistGlobals           bool
	HoistDuplicateLiterals bool
	ConstsToLets           bool

	// Filename is used in diagnostics only.
	Filename string
}

type Result struct {
	Code string
}

// externalAttempts bounds the pre-pass retry loop.
const externalAttempts = 3

// Minify runs the pipeline: pre-pass, parse, hoist passes, re-print and
// re-parse (so the scope analyzer sees the hoisted placeholders as real
// declarations), mangle, const-to-let, final print.
func Minify(source string, opts Options) (Result, error) {
	if opts.ExternalMinifier != nil && opts.TerserOptions != nil {
		var out string
		err := try.Do(func(attempt int) (bool, error) {
			var terr error
			out, terr = opts.ExternalMinifier(source, opts.TerserOptions)
			return attempt < externalAttempts, terr
		})
		if err == nil && out != "" {
			source = out
		}
	}

	log := diag.NewLog(opts.Filename)
	prog, err := js_parser.Parse(log, source)
	if err != nil {
		return Result{}, err
	}
	scope.Analyze(prog)

	if opts.HoistGlobals {
		globalhoist.Hoist(prog)
	}
	if opts.HoistDuplicateLiterals {
		lithoist.Hoist(prog)
	}

	code := js_printer.Print(prog)
	relog := diag.NewLog(opts.Filename)
	prog, err = js_parser.Parse(relog, code)
	if err != nil {
		return Result{}, err
	}
	scope.Analyze(prog)

	mangler.Mangle(prog)
	if opts.ConstsToLets {
		constlet.Rewrite(prog)
	}

	return Result{Code: js_printer.Print(prog)}, nil
}
