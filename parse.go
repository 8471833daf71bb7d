// Package sajson parses JSON into a flat, tagged-word AST built in a
// single pre-sized buffer, in the style of the sajson C++ parser it
// is named after: one allocation, in-place string mutation, and a
// read-only navigator over the result.
package sajson

import "github.com/biggeezerdevelopment/sajson-go/internal/ast"

// ParseInPlace parses buf as JSON, mutating it (string compaction,
// NUL-terminated closing quotes) and aliasing it for the lifetime of
// the returned Document. The caller must not read or write buf
// independently afterward, and must keep it alive for as long as the
// Document — or any Value derived from it — is in use.
func ParseInPlace(buf []byte, opts ...ParseOption) (*Document, error) {
	return parse(buf, opts)
}

// ParseCopy parses a defensive copy of data, leaving the caller's
// slice untouched. This is the safe default; use ParseInPlace only
// when you can give up ownership of the buffer and want to avoid the
// copy.
func ParseCopy(data []byte, opts ...ParseOption) (*Document, error) {
	buf := make([]byte, len(data))
	copy(buf, data)
	return parse(buf, opts)
}

// Parse is an alias for ParseCopy, the ownership-safe default.
func Parse(data []byte, opts ...ParseOption) (*Document, error) {
	return ParseCopy(data, opts...)
}

func parse(buf []byte, opts []ParseOption) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := cfg.strategy.Allocate(len(buf))
	if err != nil {
		pe := &ast.ParseError{Code: ast.OutOfMemory, Line: 1, Column: 1}
		return &Document{err: pe}, pe
	}

	p := ast.NewParser(buf, a, ast.Options{KeySortThreshold: cfg.threshold})
	rootTag, rootBase, perr := p.Parse()
	if perr != nil {
		cfg.strategy.Release(a)
		return &Document{err: perr.(*ast.ParseError)}, perr
	}

	return &Document{
		data:      buf,
		threshold: cfg.threshold,
		valid:     true,
		rootTag:   typeFromTag(rootTag),
		payload:   a.AST(rootBase),
	}, nil
}
