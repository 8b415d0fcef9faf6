/*
Package lr1 is a canonical LR(1) parser generator together with the lexer
for a small routing configuration language.

Package structure is as follows:

■ lr: Package lr loads context-free grammars, computes FIRST sets and builds
canonical LR(1) automata (item-sets and shift/goto/reduce rows), rejecting
grammars with shift/reduce or reduce/reduce conflicts.

■ lr/scanner: Package scanner defines the tokenizer interface and an ordered,
longest-match rule lexer. Sub-package lexmach drives the same rules through a
lexmachine DFA.

■ routing: Package routing holds the rule set of the routing language and the
adapter boundary to web backends.

■ config: Package config reads TOML configuration for the command line tool
in cmd/lr1.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1
