package main

import (
	"io"
	"os"
	"strconv"

	"github.com/newtoncy/LR1"
	"github.com/newtoncy/LR1/routing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tokenizeFlags = struct {
	dfa *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tokenize",
		Short:   "Tokenize a routing file",
		Example: `  cat routes.txt | lr1 tokenize --dfa`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokenize,
	}
	tokenizeFlags.dfa = cmd.Flags().Bool("dfa", false, "use the lexmachine DFA backend")
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var src []byte
	var err error
	if len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}
	if *tokenizeFlags.dfa {
		conf.Lexer.Backend = routing.DFABackend
	}
	lexer, err := conf.NewLexer()
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(string(src))
	if err != nil {
		return err
	}
	return printTokens(tokens)
}

func printTokens(tokens []lr1.Token) error {
	data := pterm.TableData{{"Line", "Kind", "Text", "Span"}}
	for _, t := range tokens {
		data = append(data, []string{
			strconv.Itoa(t.Line), t.Kind, t.Text, t.Span.String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printfln("%d tokens", len(tokens))
	return nil
}
