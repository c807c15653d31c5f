package realtime

import (
	"sync"

	"github.com/eduplat/campus-cli/internal/domain"
)

// registry is a typed publish/subscribe table for socket events. Every
// subscription returns an unregister func so component lifecycles cannot
// leak listeners.
type registry struct {
	mu           sync.Mutex
	nextID       int
	connected    map[int]func()
	disconnected map[int]func()
	forceLogout  map[int]func(reason string)
	notification map[int]func(domain.Notification)
}

func newRegistry() *registry {
	return &registry{
		connected:    make(map[int]func()),
		disconnected: make(map[int]func()),
		forceLogout:  make(map[int]func(reason string)),
		notification: make(map[int]func(domain.Notification)),
	}
}

func (r *registry) onConnected(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.connected[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.connected, id)
	}
}

func (r *registry) onDisconnected(fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.disconnected[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.disconnected, id)
	}
}

func (r *registry) onForceLogout(fn func(reason string)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.forceLogout[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.forceLogout, id)
	}
}

func (r *registry) onNotification(fn func(domain.Notification)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.notification[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.notification, id)
	}
}

func (r *registry) notifyConnected() {
	for _, fn := range r.connectedSnapshot() {
		fn()
	}
}

func (r *registry) notifyDisconnected() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.disconnected))
	for _, fn := range r.disconnected {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (r *registry) notifyForceLogout(reason string) {
	r.mu.Lock()
	fns := make([]func(string), 0, len(r.forceLogout))
	for _, fn := range r.forceLogout {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(reason)
	}
}

func (r *registry) notifyNotification(notification domain.Notification) {
	r.mu.Lock()
	fns := make([]func(domain.Notification), 0, len(r.notification))
	for _, fn := range r.notification {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(notification)
	}
}

func (r *registry) connectedSnapshot() []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := make([]func(), 0, len(r.connected))
	for _, fn := range r.connected {
		fns = append(fns, fn)
	}
	return fns
}
