package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newtoncy/LR1/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFirstLHS(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("File", firstLHS("# comment\n\n  File -> Stmts\nStmts -> "))
	assert.Equal("", firstLHS("# nothing"))
	assert.Equal("", firstLHS("no rule here\nS -> a"))
}

func writeGrammar(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "test.grammar")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.cli")
	defer teardown()
	//
	assert := assert.New(t)
	ok := writeGrammar(t, "S -> C C\nC -> c C | d\n")
	ambiguous := writeGrammar(t, "E -> E + E | n\n")
	noconf := filepath.Join(t.TempDir(), "none.toml")
	rootCmd.SetArgs([]string{"check", ok, "--config", noconf})
	assert.NoError(Execute())
	rootCmd.SetArgs([]string{"check", ambiguous, "--config", noconf})
	assert.Error(Execute())
}

func TestTableCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.cli")
	defer teardown()
	//
	assert := assert.New(t)
	path := writeGrammar(t, "S -> C C\nC -> c C | d\n")
	cache := filepath.Join(t.TempDir(), "table.lr1")
	noconf := filepath.Join(t.TempDir(), "none.toml")
	rootCmd.SetArgs([]string{"table", path, "--config", noconf, "--cache", cache, "--format", "dot"})
	if !assert.NoError(Execute()) {
		return
	}
	pt, err := readCache(cache)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(10, pt.States)
	g, err := loadGrammar(path)
	if assert.NoError(err) {
		assert.Equal(g.Fingerprint(), pt.GrammarID)
		kind, _ := pt.Action(0, "c")
		assert.Equal(lr.ShiftAction, kind)
	}
	rootCmd.SetArgs([]string{"table", path, "--config", noconf, "--format", "svg"})
	assert.Error(Execute())
}
