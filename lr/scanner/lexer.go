package scanner

import (
	"strings"
	"unicode"

	"github.com/newtoncy/LR1"
)

// RuleLexer is a tokenizer which tries every rule at each position of the
// input. Create one with NewRuleLexer.
type RuleLexer struct {
	rules  []Rule
	config Config
}

var _ Tokenizer = (*RuleLexer)(nil)

// NewRuleLexer creates a tokenizer for an ordered list of rules.
func NewRuleLexer(rules []Rule, opts ...Option) *RuleLexer {
	lx := &RuleLexer{
		rules:  make([]Rule, len(rules)),
		config: Configure(opts...),
	}
	copy(lx.rules, rules)
	return lx
}

// Rules returns the rules of the lexer in declaration order.
func (lx *RuleLexer) Rules() []Rule {
	rules := make([]Rule, len(lx.rules))
	copy(rules, lx.rules)
	return rules
}

// Tokenize splits source into tokens. Tokens carry the zero-based index of
// their line and their byte columns within it. Tokenize fails with a
// *LexicalError for the first position no rule matches.
func (lx *RuleLexer) Tokenize(source string) ([]lr1.Token, error) {
	var tokens []lr1.Token
	for i, line := range lx.config.Lines(source) {
		rest, col := line, 0
		for {
			trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
			col += len(rest) - len(trimmed)
			rest = strings.TrimRightFunc(trimmed, unicode.IsSpace)
			if rest == "" {
				break
			}
			rule, length := lx.longestMatch(rest)
			if length <= 0 {
				err := &LexicalError{Remainder: rest, Line: i}
				tracer().Errorf("%v", err)
				return nil, err
			}
			token := lr1.MakeToken(rule.Name, rest[:length], i,
				lr1.Span{uint64(col), uint64(col + length)})
			tracer().Debugf("token %v", token)
			tokens = append(tokens, token)
			rest, col = rest[length:], col+length
		}
	}
	return tokens, nil
}

// longestMatch returns the rule with the longest match for a prefix of input.
// For matches of equal length the rule declared first wins.
func (lx *RuleLexer) longestMatch(input string) (Rule, int) {
	var best Rule
	length := 0
	for _, r := range lx.rules {
		if l := r.Match(input); l > length {
			best, length = r, l
		}
	}
	return best, length
}
