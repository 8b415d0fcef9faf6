package lr1

import "fmt"

// --- Tokens ----------------------------------------------------------------

// Token represents an input token. Tokens are produced by a lexer and
// reflect terminals of a grammar: Kind is the name of the lexical rule which
// matched, and it is identical to the name of the terminal symbol a parser
// will look for.
//
// An example would be a token for a quoted string:
//
//    Kind = "str"          // name of the rule which matched
//    Text = `"a/b"`        // lexeme how it appeared in the input line
//    Line = 0              // zero-based line index
//    Span = 6…11           // byte columns within the line
//
type Token struct {
	Kind string
	Text string
	Line int
	Span Span
}

// MakeToken creates a token for a lexeme found at a position in a line.
func MakeToken(kind, text string, line int, span Span) Token {
	return Token{
		Kind: kind,
		Text: text,
		Line: line,
		Span: span,
	}
}

func (t Token) String() string {
	return fmt.Sprintf("(%s %q @%d%s)", t.Kind, t.Text, t.Line, t.Span)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing the extent of a token within its input
// line. A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
