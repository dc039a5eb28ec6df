package main

import (
	"bytes"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/aretw0/baristabot"
	"github.com/aretw0/baristabot/internal/cli"
	"github.com/aretw0/baristabot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "baristabot version "+baristabot.Version+"\n", run(t, "version"))
}

func TestMenuCommand(t *testing.T) {
	out := run(t, "menu", "--store", "memory", "--log-level", "error")
	assert.Equal(t, testutils.MenuText()+"\n", out)
}

func TestSessionLsCommand(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "session", "ls", "--dir", dir, "--log-level", "error")
	assert.Equal(t, "No active sessions found.\n", out)
}

func TestExitCode(t *testing.T) {
	interrupted := fmt.Errorf("chat: %w", &cli.InterruptedError{Signal: syscall.SIGINT})
	assert.Equal(t, 130, exitCode(interrupted))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
