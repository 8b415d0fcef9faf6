/*
Package routing holds the token rules of a small declarative routing
language, and the boundary to backends which register parsed routes.

A routing file maps URLs to templates, static directories, handlers, or
sub-routes:

    # route to a template
    route "a/b" to "path/to/you.html" (render)
    route "url/" to sub route "m1.route"
    mount "url/" to "path/to/static/dir" (auto_html)
    from module1.module2 import functionA
    route "url/" to functionA

    @route1
    route "c/d" to "path/to/you.html" (raw)

Keywords take precedence over identifiers of equal length, so "route" is a
keyword while "route1" is an identifier. Strings may be enclosed in single or
double quotes; either quote character closes a string.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package routing

import (
	"fmt"
	"sync"

	"github.com/newtoncy/LR1"
	"github.com/newtoncy/LR1/lr/scanner"
	"github.com/newtoncy/LR1/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr1.routing'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.routing")
}

// Token kinds of the routing language. They are the terminals of a routing
// grammar.
const (
	TokAt       = "@"
	TokMount    = "mount"
	TokRoute    = "route"
	TokTo       = "to"
	TokSubRoute = "sub_route"
	TokFrom     = "from"
	TokImport   = "import"
	TokStr      = "str"
	TokLParen   = "("
	TokRParen   = ")"
	TokDot      = "."
	TokID       = "id"
)

// Rules returns the token rules of the routing language in order of
// precedence.
func Rules() []scanner.Rule {
	return []scanner.Rule{
		scanner.Literal(TokAt, "@"),
		scanner.Literal(TokMount, "mount"),
		scanner.Literal(TokRoute, "route"),
		scanner.Literal(TokTo, "to"),
		scanner.Literal(TokSubRoute, "sub route"),
		scanner.Literal(TokFrom, "from"),
		scanner.Literal(TokImport, "import"),
		scanner.Pattern(TokStr, `["'][^"']*["']`, `["'][^"']*["']`),
		scanner.Literal(TokLParen, "("),
		scanner.Literal(TokRParen, ")"),
		scanner.Literal(TokDot, "."),
		scanner.Pattern(TokID,
			`(?:[a-zA-Z_]|[^\x00-\xff])(?:[\p{L}\p{N}_]|[^\x00-\xff])*`,
			"([a-zA-Z_]|[\x80-\xff])([a-zA-Z0-9_]|[\x80-\xff])*"),
	}
}

// Backends for tokenizing routing files.
const (
	RegexpBackend = "regexp"
	DFABackend    = "dfa"
)

// NewLexer creates a tokenizer for the routing language. backend is one of
// RegexpBackend or DFABackend.
func NewLexer(backend string, opts ...scanner.Option) (scanner.Tokenizer, error) {
	tracer().Debugf("creating %s lexer for routing language", backend)
	switch backend {
	case RegexpBackend, "":
		return scanner.NewRuleLexer(Rules(), opts...), nil
	case DFABackend:
		lm, err := lexmach.NewLMAdapter(Rules(), opts...)
		if err != nil {
			return nil, err
		}
		return lm, nil
	}
	return nil, fmt.Errorf("unknown lexer backend %q", backend)
}

var defaultLexer struct {
	once  sync.Once
	lexer *scanner.RuleLexer
}

// Tokenize splits a routing file into tokens, using a shared regexp-based
// lexer without options.
func Tokenize(source string) ([]lr1.Token, error) {
	defaultLexer.once.Do(func() {
		defaultLexer.lexer = scanner.NewRuleLexer(Rules())
	})
	return defaultLexer.lexer.Tokenize(source)
}
