package memstore

import (
	"context"
	"sync"
)

// PathStash holds at most one pre-auth path for the current process
// lifetime. Restarting the client clears it by construction.
type PathStash struct {
	mu   sync.Mutex
	path string
}

// NewPathStash creates an empty stash.
func NewPathStash() *PathStash {
	return &PathStash{}
}

func (p *PathStash) Get(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path, nil
}

func (p *PathStash) Set(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = path
	return nil
}

func (p *PathStash) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.path = ""
	return nil
}
