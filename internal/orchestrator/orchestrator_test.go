package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/config"
	"github.com/mark3labs/mirrorbook/internal/geocode"
	"github.com/mark3labs/mirrorbook/internal/handoff"
	"github.com/mark3labs/mirrorbook/internal/journal"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/wizard"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, q string) ([]geocode.Place, error) {
	return []geocode.Place{{DisplayName: q + ", Israel"}}, nil
}

type urlRecorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *urlRecorder) open(ctx context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return nil
}

func (r *urlRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.urls)
}

func newTestOrchestrator(t *testing.T, mutate func(*config.Config)) (*Orchestrator, *urlRecorder) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := config.Default()
	if mutate != nil {
		mutate(app)
	}
	rec := &urlRecorder{}
	orch, err := New(Config{
		App:      app,
		WorkDir:  t.TempDir(),
		Searcher: fakeSearcher{},
		Opener:   handoff.OpenerFunc(rec.open),
	})
	require.NoError(t, err)
	require.NoError(t, orch.Start())
	t.Cleanup(func() { _ = orch.Stop() })
	return orch, rec
}

// TestGracefulShutdown verifies that Stop completes promptly and is idempotent.
func TestGracefulShutdown(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)
	_, err := orch.ServeMCP(context.Background(), 0)
	require.NoError(t, err)

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- orch.Stop()
	}()

	select {
	case err := <-stopDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return within 5s")
	}
	require.NoError(t, orch.Stop())
}

func TestNewRejectsUnknownLanguage(t *testing.T) {
	app := config.Default()
	app.Language = "fr"
	_, err := New(Config{App: app, WorkDir: t.TempDir()})
	require.Error(t, err)
}

func TestStartLoadsCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `frames:
  - name: {en: Only Frame}
    asset: frame.png
ropes:
  - id: r1
    name: {en: Rope}
carpets:
  - id: c1
    name: {en: Carpet}
mounts:
  - id: m1
    name: {en: Mount}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	orch, _ := newTestOrchestrator(t, func(c *config.Config) { c.CatalogFile = path })
	frames := orch.Catalog().Options(catalog.Frame)
	require.Len(t, frames, 1)
	require.Equal(t, "Only Frame", frames[0].Name.Get(locale.English))
}

func TestStartFailsOnMissingCatalog(t *testing.T) {
	app := config.Default()
	app.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	orch, err := New(Config{App: app, WorkDir: t.TempDir(), Searcher: fakeSearcher{}})
	require.NoError(t, err)
	require.Error(t, orch.Start())
	require.NoError(t, orch.Stop())
}

func TestNewControllerIsJournaled(t *testing.T) {
	orch, _ := newTestOrchestrator(t, func(c *config.Config) { c.Language = "he" })
	require.Equal(t, locale.Hebrew, orch.Language())

	ctrl := orch.NewController()
	require.Equal(t, locale.Hebrew, ctrl.Lang())
	require.NoError(t, ctrl.SelectOption(catalog.Frame, "f2"))
	ctrl.Advance()

	entries, err := orch.Journal().Entries(context.Background(), ctrl.SessionID())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, journal.EventSessionStarted, entries[0].Event.Kind)

	replayed, _, err := orch.Journal().Replay(context.Background(), ctrl.SessionID())
	require.NoError(t, err)
	require.Equal(t, ctrl.Session().Selection, replayed.Selection)
	require.Equal(t, wizard.StepRopeCarpet, replayed.Wizard.Step)
}

func TestJournalCanBeDisabled(t *testing.T) {
	orch, _ := newTestOrchestrator(t, func(c *config.Config) { c.Journal = false })
	require.Nil(t, orch.Journal())
	require.NotNil(t, orch.NewController())
}

func TestDispatcherUsesMessagingConfig(t *testing.T) {
	orch, rec := newTestOrchestrator(t, func(c *config.Config) {
		c.Messaging.BaseURL = "https://chat.example.com/"
		c.Messaging.Destination = "15550100"
	})
	ctrl := orch.NewController()

	url := orch.Dispatcher().Submit(context.Background(), ctrl, "hi there")
	orch.Dispatcher().Wait()
	require.Equal(t, "https://chat.example.com/15550100?text=hi%20there", url)
	require.Equal(t, 1, rec.count())
	require.True(t, ctrl.Submitted())
}

func TestServeMCP(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)
	require.Empty(t, orch.MCPURL())

	port, err := orch.ServeMCP(context.Background(), 0)
	require.NoError(t, err)
	require.Greater(t, port, 0)
	require.Contains(t, orch.MCPURL(), "/mcp")
}

func TestRunBeforeStart(t *testing.T) {
	orch, err := New(Config{WorkDir: t.TempDir()})
	require.NoError(t, err)
	_, err = orch.RunTUI(context.Background())
	require.Error(t, err)
	_, err = orch.ServeMCP(context.Background(), 0)
	require.Error(t, err)
}
