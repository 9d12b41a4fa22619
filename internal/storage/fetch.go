package storage

import (
	"context"
	"sync"
)

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// FetchRegistry tracks the newest in-flight fetch per user.
// Starting a fetch cancels the one it supersedes, and only the newest
// generation may apply its result.
type FetchRegistry struct {
	mu      sync.Mutex
	gen     uint64
	fetches map[int64]inflight
}

func NewFetchRegistry() *FetchRegistry {
	return &FetchRegistry{
		fetches: make(map[int64]inflight),
	}
}

// Begin registers a new fetch for userID and returns its generation together
// with a context that is cancelled once a newer fetch begins or Finish is called.
func (r *FetchRegistry) Begin(ctx context.Context, userID int64) (uint64, context.Context) {
	fetchCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.fetches[userID]; ok {
		prev.cancel()
	}
	r.gen++
	r.fetches[userID] = inflight{gen: r.gen, cancel: cancel}

	return r.gen, fetchCtx
}

// Current reports whether gen is still the newest fetch for userID.
func (r *FetchRegistry) Current(userID int64, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fetches[userID]
	return ok && f.gen == gen
}

// Finish releases the fetch and reports whether it was still the newest one.
// A superseded fetch leaves the newer registration untouched.
func (r *FetchRegistry) Finish(userID int64, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fetches[userID]
	if !ok || f.gen != gen {
		return false
	}
	f.cancel()
	delete(r.fetches, userID)
	return true
}
