package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/newtoncy/LR1/config"
	"github.com/newtoncy/LR1/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "first",
		Short:   "Print the FIRST sets of the non-terminals of a grammar",
		Example: `  lr1 first routes.grammar --start File`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runFirst,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:     "check",
		Short:   "Check if a grammar is LR(1)",
		Example: `  lr1 check routes.grammar`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheck,
	})
	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Build the LR(1) table of a grammar",
		Example: `  lr1 table routes.grammar --format dot | dot -Tsvg > routes.svg`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTable,
	}
	tableFlags.format = cmd.Flags().StringP("format", "f", "", "output format [text|dot]")
	tableFlags.cache = cmd.Flags().StringP("cache", "c", "", "file to store the compiled table in")
	rootCmd.AddCommand(cmd)
}

var tableFlags = struct {
	format *string
	cache  *string
}{}

func runFirst(cmd *cobra.Command, args []string) error {
	path, err := grammarFile(args)
	if err != nil {
		return err
	}
	g, err := loadGrammar(path)
	if err != nil {
		return err
	}
	ga := lr.Analysis(g)
	data := pterm.TableData{{"Non-Terminal", "FIRST"}}
	for _, N := range g.NonTerminals() {
		data = append(data, []string{string(N), ga.First(N).String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := grammarFile(args)
	if err != nil {
		return err
	}
	g, err := loadGrammar(path)
	if err != nil {
		return err
	}
	table, err := lr.BuildTable(g)
	var gerr *lr.GrammarError
	if errors.As(err, &gerr) && lr.IsConflict(err) {
		printConflict(gerr)
		return errors.New("grammar " + g.Name + " is not LR(1)")
	} else if err != nil {
		return err
	}
	pterm.Success.Printfln("grammar %s is LR(1): %d rules, %d states", g.Name, g.Size(), table.Size())
	return nil
}

// printConflict displays the items of the state a conflict was found in.
func printConflict(gerr *lr.GrammarError) {
	root := pterm.TreeNode{Text: gerr.Kind.String() + ": " + gerr.Msg}
	for _, item := range gerr.Items {
		root.Children = append(root.Children, pterm.TreeNode{Text: item})
	}
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		tracer().Errorf("%v", err)
	}
}

func runTable(cmd *cobra.Command, args []string) error {
	if *tableFlags.format != "" {
		conf.Output.Format = *tableFlags.format
	}
	if *tableFlags.cache != "" {
		conf.Output.Cache = *tableFlags.cache
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	path, err := grammarFile(args)
	if err != nil {
		return err
	}
	g, err := loadGrammar(path)
	if err != nil {
		return err
	}
	table, err := lr.BuildTable(g)
	if err != nil {
		return err
	}
	switch conf.Output.Format {
	case config.FormatDot:
		if err := table.ToGraphViz(os.Stdout); err != nil {
			return err
		}
	default:
		pterm.DefaultSection.Println("LR(1) table for " + g.Name)
		pterm.Println(table.String())
	}
	if conf.Output.Cache != "" {
		return updateCache(conf.Output.Cache, table)
	}
	return nil
}

// updateCache stores the compiled table, unless the cache file already holds
// a table for the same grammar.
func updateCache(path string, table *lr.Table) error {
	if pt, err := readCache(path); err == nil && pt.GrammarID == table.Grammar().Fingerprint() {
		tracer().Infof("cache %s is up to date", path)
		return nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		tracer().Infof("replacing cache %s: %v", path, err)
	}
	data, err := table.Compile().MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	tracer().Infof("wrote compiled table to %s", path)
	return nil
}

func readCache(path string) (*lr.ParseTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pt := &lr.ParseTable{}
	if err := pt.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return pt, nil
}
