package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/newtoncy/LR1/config"
	"github.com/newtoncy/LR1/lr"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "lr1",
	Short: "Build canonical LR(1) tables and tokenize routing files",
	Long: `lr1 provides two features:
- Builds a canonical LR(1) parsing table from a grammar, reporting conflicts.
- Tokenizes routing files, primarily for debugging routing grammars.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	config    *string
	trace     *string
	start     *string
	noAugment *bool
}{}

// conf is the effective configuration, after applying flags.
var conf = config.Default()

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.config = flags.String("config", "lr1.toml", "configuration file")
	rootFlags.trace = flags.String("trace", "", "trace level [Debug|Info|Error]")
	rootFlags.start = flags.StringP("start", "s", "", "start symbol (default LHS of first rule)")
	rootFlags.noAugment = flags.Bool("no-augment", false, "do not add a rule S' -> S for start symbol S")
}

// Execute runs the command given on the command line.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration, applies flags given on the command line
// and sets up tracing.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(*rootFlags.config)
	if err != nil {
		return err
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "trace":
			c.Trace.Level = f.Value.String()
		case "start":
			c.Grammar.Start = f.Value.String()
		case "no-augment":
			c.Grammar.Augment = f.Value.String() != "true"
		}
	})
	if err := c.Validate(); err != nil {
		return err
	}
	conf = c
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetOutput(os.Stderr)
	tracer().SetTraceLevel(conf.TraceLevel())
	tracer().Debugf("configuration: %+v", conf)
	return nil
}

// grammarFile returns the grammar file from the arguments or the configuration.
func grammarFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if conf.Grammar.File != "" {
		return conf.Grammar.File, nil
	}
	return "", errors.New("no grammar file given")
}

// loadGrammar loads a grammar file with the configured start symbol and
// options. Without a start symbol, the left hand side of the first rule
// becomes the start symbol.
func loadGrammar(path string) (*lr.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	start := conf.Grammar.Start
	if start == "" {
		start = firstLHS(text)
	}
	g, err := lr.ParseGrammar(path, start, text, conf.GrammarOptions()...)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", path, err)
	}
	return g, nil
}

func firstLHS(text string) string {
	s := bufio.NewScanner(strings.NewReader(text))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k := strings.Index(line, "->"); k > 0 {
			return strings.TrimSpace(line[:k])
		}
		break
	}
	return ""
}
