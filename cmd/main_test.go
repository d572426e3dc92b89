package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Coverflow dev")
}

func TestSimulateArgs(t *testing.T) {
	out, err := runCLI(t, "simulate", "--slides", "3", "--transition", "", "next", "goto 2")
	require.NoError(t, err)

	assert.Contains(t, out, "ready 1/3")
	assert.Contains(t, out, "change 2/3")
	assert.Contains(t, out, "change 3/3")
}

func TestSimulateScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "session.txt")
	require.NoError(t, os.WriteFile(script, []byte("# lock demo\nnext\nnext\nadvance 510ms\nnext\n"), 0o644))

	out, err := runCLI(t, "simulate", "-f", script, "--attr", "show-dots=")
	require.NoError(t, err)
	assert.Contains(t, out, "change 3/5")
	assert.Contains(t, out, "510ms")
}

func TestSimulateRejectsBadStep(t *testing.T) {
	_, err := runCLI(t, "simulate", "jump")
	assert.Error(t, err)
}

func TestSimulateRejectsScriptAndArgs(t *testing.T) {
	_, err := runCLI(t, "simulate", "-f", "x.txt", "next")
	assert.Error(t, err)
}

func TestLogLevelFlagValidated(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "simulate", "next")
	assert.Error(t, err)
}
