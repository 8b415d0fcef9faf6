package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newtoncy/LR1/lr"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestLoadMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.cli")
	defer teardown()
	//
	assert := assert.New(t)
	c, err := Load(filepath.Join(t.TempDir(), "nothing.toml"))
	assert.NoError(err)
	assert.Equal(Default(), c)
	assert.NoError(c.Validate())
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.cli")
	defer teardown()
	//
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "lr1.toml")
	err := os.WriteFile(path, []byte(`
[grammar]
file = "routes.grammar"
start = "File"
augment = false

[lexer]
backend = "dfa"
normalize = true

[trace]
level = "Debug"
`), 0o644)
	if !assert.NoError(err) {
		return
	}
	c, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("routes.grammar", c.Grammar.File)
	assert.Equal("File", c.Grammar.Start)
	assert.False(c.Grammar.Augment)
	assert.Equal("dfa", c.Lexer.Backend)
	assert.True(c.Lexer.Normalize)
	assert.Equal(tracing.LevelDebug, c.TraceLevel())
	assert.Equal(FormatText, c.Output.Format, "default kept")
	g, err := lr.ParseGrammar("G", "S", "S -> a | b", c.GrammarOptions()...)
	assert.NoError(err)
	assert.False(g.IsAugmented())
	lexer, err := c.NewLexer()
	if assert.NoError(err) {
		tokens, err := lexer.Tokenize(`route "x" to y`)
		assert.NoError(err)
		assert.Len(tokens, 4)
	}
}

func TestInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.cli")
	defer teardown()
	//
	testCases := []struct {
		name string
		toml string
	}{
		{name: "backend", toml: "[lexer]\nbackend = \"lalr\"\n"},
		{name: "format", toml: "[output]\nformat = \"svg\"\n"},
		{name: "trace level", toml: "[trace]\nlevel = \"verbose\"\n"},
		{name: "syntax", toml: "[grammar\nfile = 1\n"},
		{name: "type", toml: "[grammar]\naugment = \"yes\"\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			assert.Error(t, Parse([]byte(tc.toml), &c))
		})
	}
}
