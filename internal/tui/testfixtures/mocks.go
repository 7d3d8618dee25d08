// Package testfixtures provides fakes and helpers for TUI tests.
//
//   - MockSearcher: canned geocoder results, with call recording
//   - MockOpener: records handed-off URLs instead of launching anything
//
// Both are safe for concurrent use.
package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/mirrorbook/internal/geocode"
)

// MockSearcher returns Places for every query, or Err when set.
type MockSearcher struct {
	mu sync.Mutex

	Places []geocode.Place
	Err    error

	Queries []string
}

// NewMockSearcher creates a searcher that answers with places.
func NewMockSearcher(places ...geocode.Place) *MockSearcher {
	return &MockSearcher{Places: places}
}

// Search records the query and returns the canned answer.
func (m *MockSearcher) Search(ctx context.Context, query string) ([]geocode.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]geocode.Place(nil), m.Places...), nil
}

// Calls returns the queries seen so far.
func (m *MockSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Queries...)
}

// MockOpener records every URL it is asked to open.
type MockOpener struct {
	mu   sync.Mutex
	urls []string

	// Err is returned from Open when set
	Err error
}

// NewMockOpener creates an empty opener.
func NewMockOpener() *MockOpener {
	return &MockOpener{}
}

// Open records url.
func (m *MockOpener) Open(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	return m.Err
}

// URLs returns the opened URLs in order.
func (m *MockOpener) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}
