// Package plugin adapts niu.Minify into a build-phase bundler plugin: a
// filter over emitted chunk filenames plus a code transform. The host
// bundler calls RenderChunk for each chunk after its own processing;
// chunks whose names miss the include pattern (or hit the exclude
// pattern) pass through untouched.
package plugin

import (
	"regexp"

	"github.com/nqminh/niu"
)

// DefaultInclude matches the JavaScript chunk names bundlers emit by
// default: .js, .cjs, .mjs.
var DefaultInclude = regexp.MustCompile(`\.[cm]?js$`)

type Options struct {
	// Include defaults to DefaultInclude when nil.
	Include *regexp.Regexp
	// Exclude is empty by default: nothing is excluded.
	Exclude *regexp.Regexp

	Minify niu.Options
}

type Plugin struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
	minify  niu.Options
}

func New(opts Options) *Plugin {
	include := opts.Include
	if include == nil {
		include = DefaultInclude
	}
	return &Plugin{include: include, exclude: opts.Exclude, minify: opts.Minify}
}

func (p *Plugin) Name() string {
	return "niu"
}

// Matches reports whether a chunk with this filename will be rewritten.
func (p *Plugin) Matches(fileName string) bool {
	if !p.include.MatchString(fileName) {
		return false
	}
	return p.exclude == nil || !p.exclude.MatchString(fileName)
}

// RenderChunk transforms one emitted chunk. The returned bool reports
// whether the chunk was rewritten at all.
func (p *Plugin) RenderChunk(code, fileName string) (string, bool, error) {
	if !p.Matches(fileName) {
		return code, false, nil
	}
	opts := p.minify
	opts.Filename = fileName
	result, err := niu.Minify(code, opts)
	if err != nil {
		return "", false, err
	}
	return result.Code, true, nil
}
