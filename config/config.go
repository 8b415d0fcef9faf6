/*
Package config loads settings for the lr1 command from a TOML file.

    [grammar]
    file = "routes.grammar"
    start = "File"
    augment = true

    [lexer]
    backend = "regexp"   # or "dfa"
    normalize = true

    [trace]
    level = "Info"

    [output]
    cache = "routes.lr1"
    format = "text"      # or "dot"

Every key is optional; a missing configuration file yields the defaults.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/newtoncy/LR1/lr"
	"github.com/newtoncy/LR1/lr/scanner"
	"github.com/newtoncy/LR1/routing"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lr1.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lr1.cli")
}

// Output formats for tables.
const (
	FormatText = "text"
	FormatDot  = "dot"
)

// Config is the complete configuration of the lr1 command.
type Config struct {
	Grammar Grammar `toml:"grammar"`
	Lexer   Lexer   `toml:"lexer"`
	Trace   Trace   `toml:"trace"`
	Output  Output  `toml:"output"`
}

// Grammar configures loading of grammar files.
type Grammar struct {
	File    string `toml:"file"`
	Start   string `toml:"start"`
	Augment bool   `toml:"augment"`
}

// Lexer configures the tokenizer for routing files.
type Lexer struct {
	Backend   string `toml:"backend"`
	Normalize bool   `toml:"normalize"`
}

// Trace configures tracing.
type Trace struct {
	Level string `toml:"level"`
}

// Output configures table output.
type Output struct {
	Cache  string `toml:"cache"`
	Format string `toml:"format"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Grammar: Grammar{Augment: true},
		Lexer:   Lexer{Backend: routing.RegexpBackend},
		Trace:   Trace{Level: "Error"},
		Output:  Output{Format: FormatText},
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values. If path does not exist, Load returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		tracer().Debugf("no config file %s, using defaults", path)
		return c, nil
	} else if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := Parse(data, &c); err != nil {
		return c, fmt.Errorf("config file %s: %w", path, err)
	}
	tracer().Infof("loaded config from %s", path)
	return c, nil
}

// Parse decodes TOML data on top of c and validates the result.
func Parse(data []byte, c *Config) error {
	if err := toml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the values of enumerated keys.
func (c Config) Validate() error {
	switch c.Lexer.Backend {
	case routing.RegexpBackend, routing.DFABackend:
	default:
		return fmt.Errorf("unknown lexer backend %q", c.Lexer.Backend)
	}
	switch c.Output.Format {
	case FormatText, FormatDot:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch strings.ToLower(c.Trace.Level) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}

// TraceLevel returns the configured trace level.
func (c Config) TraceLevel() tracing.TraceLevel {
	return tracing.TraceLevelFromString(c.Trace.Level)
}

// GrammarOptions returns the options for loading grammars.
func (c Config) GrammarOptions() []lr.Option {
	return []lr.Option{lr.AugmentStart(c.Grammar.Augment)}
}

// LexerOptions returns the options for tokenizers.
func (c Config) LexerOptions() []scanner.Option {
	return []scanner.Option{scanner.NormalizeNFC(c.Lexer.Normalize)}
}

// NewLexer creates the configured tokenizer for routing files.
func (c Config) NewLexer() (scanner.Tokenizer, error) {
	return routing.NewLexer(c.Lexer.Backend, c.LexerOptions()...)
}
