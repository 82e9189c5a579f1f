// Package testutil provides helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a debug-level logger that writes through t.Log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// Upstream is a fake provider that serves canned JSON bodies by path and
// records every path it was asked for.
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]any
	hits   []string
}

// NewUpstream starts a fake provider. Unknown paths answer 404. The server
// is closed when the test ends.
func NewUpstream(t *testing.T, routes map[string]any) *Upstream {
	t.Helper()
	u := &Upstream{routes: routes}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits = append(u.hits, r.URL.Path)
	body, ok := u.routes[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if status, isStatus := body.(int); isStatus {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// Hits returns the requested paths in order.
func (u *Upstream) Hits() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.hits...)
}
