package handoff

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mirrorbook/internal/hooks"
	"github.com/stretchr/testify/require"
)

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a b", "a%20b"},
		{"*New Booking Request*", "*New%20Booking%20Request*"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"&=?#/:+,;@$", "%26%3D%3F%23%2F%3A%2B%2C%3B%40%24"},
		{"line\nnext", "line%0Anext"},
		{"• x", "%E2%80%A2%20x"},
		{"ש", "%D7%A9"},
		{"📸", "%F0%9F%93%B8"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, EncodeComponent(tt.in), "input %q", tt.in)
	}
}

func TestEncodeComponentRoundTrips(t *testing.T) {
	msg := "*בקשת הזמנה חדשה* 📸✨\n\n• Name: Dana + Co & 100%"
	decoded, err := url.QueryUnescape(EncodeComponent(msg))
	require.NoError(t, err)
	require.Equal(t, msg, decoded)
}

func TestBuildURL(t *testing.T) {
	d := New(Config{}, nil)
	require.Equal(t, "https://wa.me/972524040714?text=hi%20there", d.BuildURL("hi there"))

	d = New(Config{BaseURL: "https://example.test/", Destination: "123"}, nil)
	require.Equal(t, "https://example.test/123?text=", d.BuildURL(""))
}

type fakeTarget struct {
	submitted bool
	marks     int
}

func (f *fakeTarget) Submitted() bool   { return f.submitted }
func (f *fakeTarget) MarkSubmitted()    { f.submitted = true; f.marks++ }
func (f *fakeTarget) SessionID() string { return "sess-1" }

type recordingOpener struct {
	mu       sync.Mutex
	urls     []string
	sessions []string
	err      error
}

func (r *recordingOpener) Open(ctx context.Context, u string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, u)
	r.sessions = append(r.sessions, SessionFrom(ctx))
	return r.err
}

func (r *recordingOpener) opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

func TestSubmitOpensAndMarks(t *testing.T) {
	op := &recordingOpener{}
	d := New(DefaultConfig(), op)
	target := &fakeTarget{}

	got := d.Submit(context.Background(), target, "hello world")
	d.Wait()

	require.Equal(t, "https://wa.me/972524040714?text=hello%20world", got)
	require.True(t, target.submitted)
	require.Equal(t, []string{got}, op.opened())
	require.Equal(t, []string{"sess-1"}, op.sessions)
}

func TestSubmitMarksEvenWhenOpenFails(t *testing.T) {
	op := &recordingOpener{err: errors.New("no browser")}
	d := New(DefaultConfig(), op)
	target := &fakeTarget{}

	d.Submit(context.Background(), target, "x")
	d.Wait()

	require.True(t, target.submitted)
	require.Len(t, op.opened(), 1)
}

func TestSubmitDoesNotWaitForOpener(t *testing.T) {
	release := make(chan struct{})
	d := New(DefaultConfig(), OpenerFunc(func(ctx context.Context, u string) error {
		<-release
		return nil
	}))
	target := &fakeTarget{}

	done := make(chan struct{})
	go func() {
		d.Submit(context.Background(), target, "x")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked on the opener")
	}
	require.True(t, target.submitted)
	close(release)
	d.Wait()
}

func TestSubmitTwiceOpensOnce(t *testing.T) {
	op := &recordingOpener{}
	d := New(DefaultConfig(), op)
	target := &fakeTarget{}

	first := d.Submit(context.Background(), target, "x")
	second := d.Submit(context.Background(), target, "x")
	d.Wait()

	require.Equal(t, first, second)
	require.Len(t, op.opened(), 1)
	require.Equal(t, 1, target.marks)
}

func TestSubmitSurvivesCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var sawErr error
	d := New(DefaultConfig(), OpenerFunc(func(ctx context.Context, u string) error {
		time.Sleep(20 * time.Millisecond)
		sawErr = ctx.Err()
		return nil
	}))
	d.Submit(ctx, &fakeTarget{}, "x")
	cancel()
	d.Wait()
	require.NoError(t, sawErr)
}

func TestHookOpenerRunsOpenAndPostSubmit(t *testing.T) {
	dir := t.TempDir()
	cfg := &hooks.Config{Hooks: hooks.HooksConfig{
		PostSubmit: []*hooks.HookConfig{{Command: "echo {{session}} > post.txt", Timeout: 5}},
	}}
	o := NewHookOpener("printf %s {{url}} > opened.txt", dir, cfg)

	err := o.Open(WithSession(context.Background(), "abc"), "https://wa.me/1?text=a%20b")
	require.NoError(t, err)

	opened, err := os.ReadFile(filepath.Join(dir, "opened.txt"))
	require.NoError(t, err)
	require.Equal(t, "https://wa.me/1?text=a%20b", string(opened))

	post, err := os.ReadFile(filepath.Join(dir, "post.txt"))
	require.NoError(t, err)
	require.Equal(t, "abc", strings.TrimSpace(string(post)))
}

func TestHookOpenerPrefersHooksFileOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := &hooks.Config{Hooks: hooks.HooksConfig{
		Open: &hooks.HookConfig{Command: "echo hooked > which.txt", Timeout: 5},
	}}
	o := NewHookOpener("echo configured > which.txt", dir, cfg)
	require.NoError(t, o.Open(context.Background(), "https://x"))

	which, err := os.ReadFile(filepath.Join(dir, "which.txt"))
	require.NoError(t, err)
	require.Equal(t, "hooked", strings.TrimSpace(string(which)))
}

func TestHookOpenerFailure(t *testing.T) {
	o := NewHookOpener("exit 7", t.TempDir(), nil)
	require.Error(t, o.Open(context.Background(), "https://x"))
}

func TestNewHookOpenerDefaultCommand(t *testing.T) {
	o := NewHookOpener("", "", nil)
	require.Equal(t, hooks.DefaultOpenCommand(), o.Command)
}
