/*
Package lexmach provides an adapter to use the lexmachine scanner generator
as a scanner.Tokenizer.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

All rules of a rule set are compiled into one DFA: literal rules are added
verbatim (keywords) or escaped (punctuation), pattern rules contribute their
lexmachine pattern (field DFA of scanner.Rule). Blanks and tabs between tokens
are skipped. Like lexmachine itself, the resulting tokenizer prefers the
longest match and, for matches of equal length, the rule added first, and
therefore produces the same tokens as scanner.RuleLexer, as long as the DFA
patterns describe the same languages as their regexp counterparts.

	LM, err := lexmach.NewLMAdapter(rules)
	if err != nil {
		// DFA did not compile
	}
	tokens, err := LM.Tokenize("input string to tokenize")

Lexmachine operates on bytes. Non-ASCII letters have to be covered by byte
ranges in DFA patterns, and whitespace other than blanks, tabs and carriage
returns is not skipped.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
