package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a quiet config and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  level: error\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_Stdin(t *testing.T) {
	out, _, err := run(t, "kitaplar\nbook-PL\nlie-PROG=3SG\n", "generate")
	require.NoError(t, err)

	assert.Equal(t, "Abbreviation,Meaning,Category\n"+
		"PL,plural,number\n"+
		"PROG,progressive,tense/aspect/mood\n"+
		"3,3rd person,person\n"+
		"SG,singular,number\n", out)
}

func TestGenerate_NoDecompose(t *testing.T) {
	out, _, err := run(t, "go-XYZ.PL\n", "generate", "--no-decompose")
	require.NoError(t, err)
	assert.Equal(t, "Abbreviation,Meaning,Category\nXYZ.PL,,\n", out)
}

func TestGenerate_FileAndDictionary(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "gloss.txt")
	dict := filepath.Join(dir, "dict.csv")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte("go-EVID dog-PL\n"), 0o644))
	require.NoError(t, os.WriteFile(dict, []byte("Abbreviation,Meaning,Category\nEVID,evidential,mood\n"), 0o644))

	_, _, err := run(t, "", "generate", input, "--dict", dict, "--output", output)
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Abbreviation,Meaning,Category\nEVID,evidential,mood\nPL,plural,number\n", string(got))
}

func TestGenerate_BadDictionaryFallsBack(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.csv")
	require.NoError(t, os.WriteFile(dict, []byte("Abbreviation,Gloss\nPL,many\n"), 0o644))

	out, errOut, err := run(t, "dog-PL\n", "generate", "--dict", dict)
	require.NoError(t, err)
	assert.Contains(t, errOut, "using built-in dictionary only")
	assert.Contains(t, out, "PL,plural,number")
}

func TestGenerate_InvalidMinMarked(t *testing.T) {
	_, _, err := run(t, "dog-PL\n", "generate", "--min-marked", "0")
	assert.Error(t, err)
}

func TestBuiltinCmd(t *testing.T) {
	out, _, err := run(t, "", "builtin")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Abbreviation,Meaning,Category\n"))
	assert.Contains(t, out, "\nPL,plural,number\n")
}

func TestSplitAddr(t *testing.T) {
	host, port, err := splitAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", host)
	assert.Equal(t, 9090, port)

	_, _, err = splitAddr("localhost")
	assert.Error(t, err)
}
