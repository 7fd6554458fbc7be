package main

import (
	"io"
	"sync"

	"github.com/invokta/onboarding/internal/domain/session"
)

// routeRecorder implements ports.Navigator for the CLI: it prints each
// requested route and remembers the most recent one so commands can report
// where the flow landed.
type routeRecorder struct {
	out io.Writer

	mu   sync.Mutex
	last session.Route
}

func (r *routeRecorder) Navigate(route session.Route) {
	r.mu.Lock()
	r.last = route
	r.mu.Unlock()
	_ = writef(r.out, "navigate: %s\n", route)
}

// Last returns the most recently requested route, or empty when none was.
func (r *routeRecorder) Last() session.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
