package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrStaleResponse marks a response that a newer request superseded
var ErrStaleResponse = errors.New("response superseded by a newer request")

type ticket struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

// RequestTracker keeps one in-flight request per key.
// Beginning a request cancels the previous one of the same key.
type RequestTracker struct {
	mu       sync.Mutex
	inflight map[int64]ticket
}

// NewRequestTracker creates an empty tracker
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{inflight: make(map[int64]ticket)}
}

// Begin registers a new request for key and returns its context and ticket id
func (t *RequestTracker) Begin(ctx context.Context, key int64) (context.Context, uuid.UUID) {
	ctx, cancel := context.WithCancel(ctx)
	id := uuid.New()

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.inflight[key]; ok {
		prev.cancel()
	}
	t.inflight[key] = ticket{id: id, cancel: cancel}

	return ctx, id
}

// Finish releases the request and reports whether it is still the latest for key
func (t *RequestTracker) Finish(key int64, id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.inflight[key]
	if !ok || current.id != id {
		return false
	}
	current.cancel()
	delete(t.inflight, key)
	return true
}

// Cancel aborts the in-flight request of key, if any
func (t *RequestTracker) Cancel(key int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.inflight[key]; ok {
		current.cancel()
		delete(t.inflight, key)
	}
}
