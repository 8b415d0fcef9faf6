/*
Package scanner defines an interface for tokenizers producing input for parsers
built with package lr.

Tokenizers are driven by an ordered list of rules. A rule is either a literal
string (a punctuation character, a keyword or a phrase of several words) or a
regular expression. Input is processed line by line: lines which start with '#'
are comments and skipped as a whole, whitespace separates tokens, and at every
position the rule producing the longest match wins. For matches of equal
length the rule declared first wins.

    lexer := scanner.NewRuleLexer([]scanner.Rule{
        scanner.Literal("(", "("),
        scanner.Literal("let", "let"),
        scanner.Pattern("id", `[a-z]+`, `[a-z]+`),
    })
    tokens, err := lexer.Tokenize(source)

Two implementations are provided: (1) RuleLexer, which tests every rule with
Go's regexp package, and (2) an adapter for lexmachine, living in sub-package
`lexmach`, which compiles all rules into a single DFA.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/newtoncy/LR1"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'lr1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.scanner")
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	Tokenize(source string) ([]lr1.Token, error)
}

// --- Rules -----------------------------------------------------------------

// Rule is a named token rule. Exactly one of Literal and Pattern is set.
// DFA holds the rule's pattern in lexmachine syntax and is used by DFA-based
// tokenizers only; for literal rules it may be empty.
type Rule struct {
	Name    string         // token kind
	Literal string         // literal text to match
	Pattern *regexp.Regexp // anchored regular expression to match
	DFA     string         // pattern for lexmachine
}

// Literal creates a rule matching text verbatim.
func Literal(name, text string) Rule {
	return Rule{Name: name, Literal: text}
}

// Pattern creates a rule matching a regular expression. expr is in Go regexp
// syntax and will be anchored at the start of the input, dfa is the same
// pattern in lexmachine syntax. Pattern panics if expr does not compile.
func Pattern(name, expr, dfa string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`^(?:` + expr + `)`),
		DFA:     dfa,
	}
}

// IsLiteral is true for rules matching a literal string.
func (r Rule) IsLiteral() bool {
	return r.Pattern == nil
}

// Match returns the length in bytes of the prefix of input matched by r,
// or -1 if r does not match.
func (r Rule) Match(input string) int {
	if r.IsLiteral() {
		if r.Literal != "" && strings.HasPrefix(input, r.Literal) {
			return len(r.Literal)
		}
		return -1
	}
	if loc := r.Pattern.FindStringIndex(input); loc != nil {
		return loc[1]
	}
	return -1
}

func (r Rule) String() string {
	if r.IsLiteral() {
		return fmt.Sprintf("%s = %q", r.Name, r.Literal)
	}
	return fmt.Sprintf("%s = /%s/", r.Name, r.Pattern)
}

// --- Errors ----------------------------------------------------------------

// LexicalError is returned if no rule matches the remaining input of a line.
// Tokenizing stops at the first error.
type LexicalError struct {
	Remainder string // unmatched input, trimmed
	Line      int    // zero-based line index
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("no token matches %q in line %d", e.Remainder, e.Line)
}

// --- Options ---------------------------------------------------------------

// Config holds the settings shared by all tokenizers.
type Config struct {
	NormalizeNFC bool // normalize source text to Unicode NFC
}

// Option configures a tokenizer.
type Option func(c *Config)

// NormalizeNFC sets or clears option NormalizeNFC. If set, source text is
// converted to Unicode normalization form C before tokenizing, so that
// composed and decomposed spellings of a character produce the same tokens.
func NormalizeNFC(b bool) Option {
	return func(c *Config) {
		c.NormalizeNFC = b
	}
}

// Configure applies options to a fresh Config.
func Configure(opts ...Option) Config {
	c := Config{}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Lines prepares source text according to c and splits it into lines.
// Comment lines are replaced by empty strings, thus line indices are preserved.
func (c Config) Lines(source string) []string {
	if c.NormalizeNFC {
		source = norm.NFC.String(source)
	}
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if IsComment(line) {
			lines[i] = ""
		}
	}
	return lines
}

// IsComment is true for lines starting with '#', not counting leading whitespace.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}
