// Package lookup drives the debounced address search behind the location
// field: it coalesces keystrokes, tags every outbound search with a request
// id and drops answers that arrive for a superseded query.
package lookup

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mirrorbook/internal/geocode"
	"github.com/mark3labs/mirrorbook/internal/logger"
)

const (
	DefaultDebounce  = 500 * time.Millisecond
	DefaultBlurGrace = 200 * time.Millisecond
	// DefaultMinChars is the longest input that never triggers a search.
	DefaultMinChars = 2
)

// ErrNoSuggestion is returned by SelectIndex for an index outside the results.
var ErrNoSuggestion = errors.New("no such suggestion")

// State is the lookup state.
type State int

const (
	Idle State = iota
	Debouncing
	Searching
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Searching:
		return "searching"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// LocationSink receives the text of a chosen suggestion.
type LocationSink interface {
	SetLocation(text string)
}

// Snapshot is a copy of the lookup state.
type Snapshot struct {
	Query              string
	State              State
	RequestID          uint64
	Results            []geocode.Place
	Loading            bool
	SuggestionsVisible bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the real clock.
func WithClock(c Clock) Option { return func(s *Service) { s.clock = c } }

// WithDebounce sets the quiet period before a search is issued.
func WithDebounce(d time.Duration) Option { return func(s *Service) { s.debounce = d } }

// WithBlurGrace sets how long suggestions stay visible after Blur.
func WithBlurGrace(d time.Duration) Option { return func(s *Service) { s.blurGrace = d } }

// WithMinChars sets the input length at or below which no search happens.
func WithMinChars(n int) Option { return func(s *Service) { s.minChars = n } }

// WithSink sets where selected suggestions are written.
func WithSink(sink LocationSink) Option { return func(s *Service) { s.sink = sink } }

// Service is the lookup state machine for one location field.
type Service struct {
	searcher  geocode.Searcher
	clock     Clock
	debounce  time.Duration
	blurGrace time.Duration
	minChars  int

	mu        sync.Mutex
	sink      LocationSink
	snap      Snapshot
	timer     Timer
	timerGen  uint64
	hideTimer Timer
	hideGen   uint64
	active    uint64 // id whose answer will be accepted, 0 for none
	cancel    context.CancelFunc
	closed    bool

	notifyMu  sync.Mutex
	listeners []func(Snapshot)
}

// New creates a Service that searches with searcher.
func New(searcher geocode.Searcher, opts ...Option) *Service {
	s := &Service{
		searcher:  searcher,
		clock:     realClock{},
		debounce:  DefaultDebounce,
		blurGrace: DefaultBlurGrace,
		minChars:  DefaultMinChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSink replaces the location sink.
func (s *Service) SetSink(sink LocationSink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// OnChange registers fn to run after every transition. Listeners run outside
// the state lock but must not call back into the Service.
func (s *Service) OnChange(fn func(Snapshot)) {
	s.notifyMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.notifyMu.Unlock()
}

func (s *Service) changed() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if len(s.listeners) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	snap.Results = append([]geocode.Place(nil), s.snap.Results...)
	return snap
}

func (s *Service) qualifies(q string) bool {
	return utf8.RuneCountInString(q) > s.minChars
}

// supersede stops the debounce timer and abandons the in-flight request.
// Callers hold mu.
func (s *Service) supersede() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = 0
	s.snap.Loading = false
}

// Input handles a change of the raw field text.
func (s *Service) Input(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.snap.Query = raw
	s.supersede()

	if !s.qualifies(raw) {
		s.snap.State = Idle
		s.snap.Results = nil
		s.snap.SuggestionsVisible = false
		s.mu.Unlock()
		s.changed()
		return
	}

	s.snap.State = Debouncing
	gen := s.timerGen
	s.timer = s.clock.AfterFunc(s.debounce, func() { s.fire(gen) })
	s.mu.Unlock()
	s.changed()
}

// begin moves to Searching under a fresh request id. Callers hold mu.
func (s *Service) begin(parent context.Context) (context.Context, uint64) {
	s.snap.RequestID++
	id := s.snap.RequestID
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.active = id
	s.snap.State = Searching
	s.snap.Loading = true
	return ctx, id
}

func (s *Service) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ctx, id := s.begin(context.Background())
	query := s.snap.Query
	s.mu.Unlock()
	s.changed()

	logger.Debug("lookup #%d: searching %q", id, query)
	go func() {
		places, err := s.searcher.Search(ctx, query)
		s.finish(id, places, err)
	}()
}

// finish applies the answer for request id unless it was superseded.
func (s *Service) finish(id uint64, places []geocode.Place, err error) bool {
	s.mu.Lock()
	if s.closed || id != s.active {
		s.mu.Unlock()
		logger.Debug("lookup #%d: stale answer discarded", id)
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = 0
	s.snap.Loading = false
	if err != nil {
		s.snap.State = Failed
		s.snap.Results = nil
		s.snap.SuggestionsVisible = false
		logger.Warn("lookup #%d failed: %v", id, err)
	} else {
		s.snap.State = Resolved
		s.snap.Results = places
		s.snap.SuggestionsVisible = true
	}
	s.mu.Unlock()
	s.changed()
	return true
}

// SearchNow skips the debounce window and searches query immediately,
// waiting for the answer. It goes through the same request-id bookkeeping as
// debounced searches.
func (s *Service) SearchNow(ctx context.Context, query string) ([]geocode.Place, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, context.Canceled
	}
	s.snap.Query = query
	s.supersede()
	reqCtx, id := s.begin(ctx)
	s.mu.Unlock()
	s.changed()

	places, err := s.searcher.Search(reqCtx, query)
	if !s.finish(id, places, err) {
		return nil, context.Canceled
	}
	return places, err
}

// Select writes place into the location sink and hides the suggestions.
func (s *Service) Select(place geocode.Place) {
	s.mu.Lock()
	s.snap.Query = place.DisplayName
	if s.snap.State == Debouncing || s.snap.State == Searching {
		s.supersede()
		s.snap.State = Idle
		if len(s.snap.Results) > 0 {
			s.snap.State = Resolved
		}
	}
	s.snap.SuggestionsVisible = false
	s.stopHide()
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink.SetLocation(place.DisplayName)
	}
	s.changed()
}

// SelectIndex selects the i-th result.
func (s *Service) SelectIndex(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.snap.Results) {
		s.mu.Unlock()
		return ErrNoSuggestion
	}
	place := s.snap.Results[i]
	s.mu.Unlock()
	s.Select(place)
	return nil
}

func (s *Service) stopHide() {
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
	s.hideGen++
}

// Focus cancels a pending hide and shows the suggestions again when the
// query qualifies and results exist.
func (s *Service) Focus() {
	s.mu.Lock()
	s.stopHide()
	if s.qualifies(s.snap.Query) && len(s.snap.Results) > 0 {
		s.snap.SuggestionsVisible = true
	}
	s.mu.Unlock()
	s.changed()
}

// Blur hides the suggestions once the grace delay has passed.
func (s *Service) Blur() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopHide()
	gen := s.hideGen
	s.hideTimer = s.clock.AfterFunc(s.blurGrace, func() {
		s.mu.Lock()
		if gen != s.hideGen || s.closed {
			s.mu.Unlock()
			return
		}
		s.hideTimer = nil
		s.snap.SuggestionsVisible = false
		s.mu.Unlock()
		s.changed()
	})
	s.mu.Unlock()
}

// Close stops all timers and abandons any in-flight request.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersede()
	s.stopHide()
	s.closed = true
}
