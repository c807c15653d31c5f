package rest

import "sync"

// pendingTracker records in-flight mutation keys so an identical
// resubmission fails fast instead of reaching the transport. This is a
// client-side double-submit guard, not an exactly-once protocol.
type pendingTracker struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newPendingTracker() *pendingTracker {
	return &pendingTracker{keys: make(map[string]struct{})}
}

// acquire registers key and reports whether it was free. The caller must
// release the key in a defer regardless of the request outcome.
func (p *pendingTracker) acquire(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, inFlight := p.keys[key]; inFlight {
		return false
	}
	p.keys[key] = struct{}{}
	return true
}

func (p *pendingTracker) release(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.keys, key)
}
