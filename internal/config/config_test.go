package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at a temp dir and runs in another temp dir.
func isolate(t *testing.T) (xdg, work string) {
	t.Helper()
	xdg = t.TempDir()
	work = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(work)
	return xdg, work
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/mirrorbook/mirrorbook.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got))
	assert.True(t, strings.HasSuffix(got, filepath.Join(".config", "mirrorbook", "mirrorbook.yml")), got)
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "mirrorbook.yml", ProjectPath())
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)
	require.False(t, Exists())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Journal)
	assert.Equal(t, "https://wa.me", cfg.Messaging.BaseURL)
	assert.Equal(t, "972524040714", cfg.Messaging.Destination)
	assert.Equal(t, "il", cfg.Geocoder.Country)
	assert.Equal(t, 5, cfg.Geocoder.Limit)
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Lookup.Debounce)
	assert.Equal(t, 200*time.Millisecond, cfg.Lookup.BlurGrace)
	assert.Equal(t, 2, cfg.Lookup.MinChars)
}

func TestLoad_Precedence(t *testing.T) {
	xdg, work := isolate(t)

	global := filepath.Join(xdg, "mirrorbook", "mirrorbook.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
	require.NoError(t, os.WriteFile(global, []byte(`
language: he
log_level: debug
messaging:
  destination: "111"
lookup:
  debounce: 300ms
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(work, "mirrorbook.yml"), []byte(`
language: ar
geocoder:
  country: ps
`), 0o644))

	t.Setenv("MIRRORBOOK_LOG_LEVEL", "warn")
	t.Setenv("MIRRORBOOK_GEOCODER_LIMIT", "3")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("lang", "en", "")
	fs.String("destination", "", "")
	require.NoError(t, fs.Parse([]string{"--lang", "en"}))

	cfg, err := Load(map[string]*pflag.Flag{
		"language":              fs.Lookup("lang"),
		"messaging.destination": fs.Lookup("destination"),
	})
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language, "set flag beats project file")
	assert.Equal(t, "111", cfg.Messaging.Destination, "unset flag leaves global file value")
	assert.Equal(t, "warn", cfg.LogLevel, "env beats global file")
	assert.Equal(t, 3, cfg.Geocoder.Limit)
	assert.Equal(t, "ps", cfg.Geocoder.Country)
	assert.Equal(t, 300*time.Millisecond, cfg.Lookup.Debounce)
	assert.Equal(t, "https://wa.me", cfg.Messaging.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, work := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, "mirrorbook.yml"), []byte("language: [oops"), 0o644))
	_, err := Load(nil)
	require.Error(t, err)
}

func TestWriteGlobalRoundTrip(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.Language = "he"
	cfg.Lookup.Debounce = 750 * time.Millisecond
	cfg.MCP.Port = 8123
	require.NoError(t, WriteGlobal(cfg))
	require.True(t, Exists())

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce: 750ms")

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteProject(t *testing.T) {
	_, work := isolate(t)

	cfg := Default()
	cfg.CatalogFile = "my-catalog.yaml"
	require.NoError(t, WriteProject(cfg))

	_, err := os.Stat(filepath.Join(work, "mirrorbook.yml"))
	require.NoError(t, err)

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "my-catalog.yaml", loaded.CatalogFile)
}
