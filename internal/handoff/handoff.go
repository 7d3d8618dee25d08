// Package handoff turns a composed booking message into a messaging deep link
// and hands it to the system, marking the session submitted.
package handoff

import (
	"context"
	"strings"
	"sync"

	"github.com/mark3labs/mirrorbook/internal/logger"
)

const (
	DefaultBaseURL     = "https://wa.me"
	DefaultDestination = "972524040714"
)

// Config holds the deep link target.
type Config struct {
	BaseURL     string
	Destination string
}

// DefaultConfig returns the built-in target.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Destination: DefaultDestination}
}

// Opener hands a URL to something that can display it.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// Finalizer is the state that gets marked once a booking is handed off.
// *wizard.Controller satisfies it.
type Finalizer interface {
	Submitted() bool
	MarkSubmitted()
}

// Dispatcher builds handoff URLs and opens them.
type Dispatcher struct {
	cfg    Config
	opener Opener
	wg     sync.WaitGroup
}

// New creates a Dispatcher. Empty config fields take the defaults; a nil
// opener only builds URLs.
func New(cfg Config, opener Opener) *Dispatcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Destination == "" {
		cfg.Destination = DefaultDestination
	}
	return &Dispatcher{cfg: cfg, opener: opener}
}

// BuildURL returns <base>/<destination>?text=<encoded message>.
func (d *Dispatcher) BuildURL(message string) string {
	return BuildURL(d.cfg, message)
}

// BuildURL is the package-level form of (*Dispatcher).BuildURL.
func BuildURL(cfg Config, message string) string {
	return strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Destination + "?text=" + EncodeComponent(message)
}

// Submit opens the handoff URL in the background and marks target submitted.
// Open failures are logged only. A target that is already submitted gets the
// URL back without a second open.
func (d *Dispatcher) Submit(ctx context.Context, target Finalizer, message string) string {
	url := d.BuildURL(message)
	if target != nil && target.Submitted() {
		logger.Debug("handoff skipped: already submitted")
		return url
	}

	if d.opener != nil {
		openCtx := context.WithoutCancel(ctx)
		if s, ok := target.(interface{ SessionID() string }); ok {
			openCtx = WithSession(openCtx, s.SessionID())
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.opener.Open(openCtx, url); err != nil {
				logger.Error("opening handoff URL: %v", err)
				return
			}
			logger.Info("handoff URL opened")
		}()
	}

	if target != nil {
		target.MarkSubmitted()
	}
	return url
}

// Wait blocks until every open started by Submit has returned. Commands that
// exit right after submitting call it so the opener is not cut short.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

type sessionKey struct{}

// WithSession attaches a session id for openers that report it.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionFrom returns the session id attached with WithSession.
func SessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
