package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `version: 1
hooks:
  open:
    command: "echo {{url}}"
    timeout: 5
  post_submit:
    - command: "echo done {{session}}"
    - command: "true"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Version)
	require.Equal(t, "echo {{url}}", cfg.Hooks.Open.Command)
	require.Equal(t, 5, cfg.Hooks.Open.Timeout)
	require.Len(t, cfg.Hooks.PostSubmit, 2)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: [unclosed"), 0o644))
	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestExpandVariablesQuotesValues(t *testing.T) {
	got := expandVariables("open {{url}} # {{session}}", Variables{
		URL:     "https://wa.me/1?text=a%20b&c",
		Session: "it's",
	})
	require.Equal(t, `open 'https://wa.me/1?text=a%20b&c' # 'it'\''s'`, got)
}

func TestRunEchoesURLVerbatim(t *testing.T) {
	url := "https://wa.me/972524040714?text=Hello%20%26%20bye;rm"
	out, err := Run(context.Background(), &HookConfig{Command: "printf %s {{url}}", Timeout: 5}, t.TempDir(), Variables{URL: url})
	require.NoError(t, err)
	require.Equal(t, url, out)
}

func TestRunReportsFailure(t *testing.T) {
	_, err := Run(context.Background(), &HookConfig{Command: "exit 3", Timeout: 5}, t.TempDir(), Variables{})
	require.Error(t, err)
}

func TestRunTimeout(t *testing.T) {
	_, err := Run(context.Background(), &HookConfig{Command: "sleep 5", Timeout: 1}, t.TempDir(), Variables{})
	require.True(t, errors.Is(err, ErrTimeout))
}

func TestRunNilHook(t *testing.T) {
	out, err := Run(context.Background(), nil, t.TempDir(), Variables{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestExecuteDegradesGracefully(t *testing.T) {
	out, err := Execute(context.Background(), &HookConfig{Command: "echo oops >&2; exit 1", Timeout: 5}, t.TempDir(), Variables{})
	require.NoError(t, err)
	require.Contains(t, out, "oops")
	require.Contains(t, out, "[stderr]")
}

func TestExecuteContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Execute(ctx, &HookConfig{Command: "echo hi", Timeout: 5}, t.TempDir(), Variables{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteAll(t *testing.T) {
	hooks := []*HookConfig{
		{Command: "echo first", Timeout: 5},
		{Command: "true", Timeout: 5},
		{Command: "echo {{session}}", Timeout: 5},
	}
	out, err := ExecuteAll(context.Background(), hooks, t.TempDir(), Variables{Session: "s-1"})
	require.NoError(t, err)
	require.Equal(t, "first\n\ns-1\n", out)
}

func TestDefaultOpenCommandHasURLPlaceholder(t *testing.T) {
	require.Contains(t, DefaultOpenCommand(), "{{url}}")
}
