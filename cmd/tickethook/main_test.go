package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/tickethook/internal/chat"
	"github.com/wahlandcase/tickethook/internal/config"
	"github.com/wahlandcase/tickethook/internal/hook"
	"github.com/wahlandcase/tickethook/internal/tracker"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNotifiers(t *testing.T) {
	t.Cleanup(func() { dryRun = false })

	t.Run("tracker only by default", func(t *testing.T) {
		dryRun = false
		list := notifiers(config.DefaultConfig(), quietLogger())
		require.Len(t, list, 1)
		assert.IsType(t, &tracker.Client{}, list[0])
	})

	t.Run("tracker then chat", func(t *testing.T) {
		dryRun = false
		cfg := config.DefaultConfig()
		cfg.Chat.WebhookURL = "https://chat.example.com/hook"

		list := notifiers(cfg, quietLogger())
		require.Len(t, list, 2)
		assert.Equal(t, tracker.Name, list[0].Name())
		assert.Equal(t, chat.Name, list[1].Name())
	})

	t.Run("nothing configured", func(t *testing.T) {
		dryRun = false
		cfg := config.DefaultConfig()
		cfg.Tracker.BaseURL = ""

		assert.Empty(t, notifiers(cfg, quietLogger()))
	})

	t.Run("dry run swaps in stand-ins", func(t *testing.T) {
		dryRun = true
		cfg := config.DefaultConfig()
		cfg.Chat.WebhookURL = "https://chat.example.com/hook"

		list := notifiers(cfg, quietLogger())
		require.Len(t, list, 2)
		for _, n := range list {
			assert.IsType(t, &hook.DryRunNotifier{}, n)
		}
	})
}

func TestRootCmd_UntrackedPushIsQuiet(t *testing.T) {
	chdirTemp(t)
	t.Setenv(config.EnvBranch, "refs/heads/master")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader("1111111111111111111111111111111111111111 2222222222222222222222222222222222222222 refs/heads/feature\n"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--dry-run", "--no-color"})
	t.Cleanup(func() { dryRun, noColor = false, false })

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
}

func TestRootCmd_BadConfigIsReported(t *testing.T) {
	chdirTemp(t)

	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", "does-not-exist.toml"})
	t.Cleanup(func() { configPath = "" })

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to load config")
}

// chdirTemp changes into a fresh temp dir for the duration of the test and
// restores the previous working directory afterwards (t.Chdir needs Go 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
