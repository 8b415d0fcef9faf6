/*
Command lr1 builds LR(1) tables for grammars and tokenizes routing files.

    lr1 tokenize routes.txt          # print the tokens of a routing file
    lr1 first routes.grammar         # print FIRST sets
    lr1 table routes.grammar         # print the ACTION/GOTO table
    lr1 check routes.grammar         # report conflicts
    lr1 repl                         # tokenize interactively

Settings are read from lr1.toml in the current directory, if present (see
package config). Flags override settings from the configuration file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lr1.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.cli")
}

func main() {
	initDisplay()
	if err := Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
