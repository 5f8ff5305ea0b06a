//go:build integration

package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/go-chi/chi/v5"
)

// FakeBackend serves a snapshot's collections the way the competition REST
// backend does.
type FakeBackend struct {
	*httptest.Server

	mu       sync.RWMutex
	snapshot *competitiondomain.Snapshot
}

// NewFakeBackend starts a backend serving snapshot.
func NewFakeBackend(snapshot *competitiondomain.Snapshot) *FakeBackend {
	fb := &FakeBackend{snapshot: snapshot}

	r := chi.NewRouter()
	r.Get("/participants/", fb.serve(func(s *competitiondomain.Snapshot) any { return s.Participants }))
	r.Get("/blocks/", fb.serve(func(s *competitiondomain.Snapshot) any { return s.Blocks }))
	r.Get("/blockscores/", fb.serve(func(s *competitiondomain.Snapshot) any { return s.Ascensions }))
	r.Get("/scoreoptions/", fb.serve(func(s *competitiondomain.Snapshot) any { return s.ScoreOptions }))

	fb.Server = httptest.NewServer(r)
	return fb
}

// SetSnapshot replaces the served collections.
func (fb *FakeBackend) SetSnapshot(snapshot *competitiondomain.Snapshot) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.snapshot = snapshot
}

func (fb *FakeBackend) serve(pick func(*competitiondomain.Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fb.mu.RLock()
		body := pick(fb.snapshot)
		fb.mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
}
