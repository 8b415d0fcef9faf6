package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/newtoncy/LR1/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Tokenize routing statements interactively",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	})
}

func runREPL(cmd *cobra.Command, args []string) error {
	lexer, err := conf.NewLexer()
	if err != nil {
		return err
	}
	repl, err := readline.New("lr1> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalLine(lexer, line)
	}
	pterm.Println("Good bye!")
	return nil
}

// evalLine tokenizes a single line of input. Errors are displayed, not returned.
func evalLine(lexer scanner.Tokenizer, line string) {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if err := printTokens(tokens); err != nil {
		tracer().Errorf("%v", err)
	}
}
