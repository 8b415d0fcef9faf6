package lexmach

import (
	"errors"
	"strings"
	"unicode"

	"github.com/newtoncy/LR1"
	"github.com/newtoncy/LR1/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lr1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.scanner")
}

// whitespace between tokens, within a line
const whitespace = `( |\t|\r)+`

// LMAdapter is a lexmachine adapter to use lexmachine as a tokenizer.
type LMAdapter struct {
	Lexer  *lexmachine.Lexer
	rules  []scanner.Rule
	config scanner.Config
}

var _ scanner.Tokenizer = (*LMAdapter)(nil)

// NewLMAdapter creates a new lexmachine adapter for an ordered list of rules.
// Literal rules are escaped character by character unless they consist of
// letters and blanks only (keywords and keyword phrases); pattern rules
// contribute their DFA pattern.
//
// NewLMAdapter will return an error if a pattern rule has no DFA pattern or if
// compiling the DFA failed.
func NewLMAdapter(rules []scanner.Rule, opts ...scanner.Option) (*LMAdapter, error) {
	adapter := &LMAdapter{
		rules:  make([]scanner.Rule, len(rules)),
		config: scanner.Configure(opts...),
	}
	copy(adapter.rules, rules)
	adapter.Lexer = lexmachine.NewLexer()
	for id, rule := range rules {
		var r string
		if rule.IsLiteral() {
			r = literalPattern(rule.Literal)
		} else if r = rule.DFA; r == "" {
			return nil, errors.New("rule " + rule.Name + " has no DFA pattern")
		}
		adapter.Lexer.Add([]byte(r), MakeToken(rule.Name, id))
	}
	adapter.Lexer.Add([]byte(whitespace), Skip)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func literalPattern(lit string) string {
	for _, c := range lit {
		if !unicode.IsLetter(c) && c != ' ' {
			return "\\" + strings.Join(strings.Split(lit, ""), "\\")
		}
	}
	return lit
}

// Tokenize is part of the scanner.Tokenizer interface. Input is scanned line
// by line, with the same line, comment and error conventions as
// scanner.RuleLexer.
func (lm *LMAdapter) Tokenize(source string) ([]lr1.Token, error) {
	var tokens []lr1.Token
	for i, line := range lm.config.Lines(source) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := lm.Lexer.Scanner([]byte(line))
		if err != nil {
			return nil, err
		}
		for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
			if err != nil {
				var ui *machines.UnconsumedInput
				if errors.As(err, &ui) {
					err = &scanner.LexicalError{
						Remainder: strings.TrimSpace(line[ui.StartTC:]),
						Line:      i,
					}
				}
				tracer().Errorf("%v", err)
				return nil, err
			}
			token := tok.(*lexmachine.Token)
			t := lr1.MakeToken(lm.rules[token.Type].Name, string(token.Lexeme), i,
				lr1.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))})
			tracer().Debugf("token %v", t)
			tokens = append(tokens, t)
		}
	}
	return tokens, nil
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
