package alphabetize

import (
	"fmt"
	"sync"
)

// Resolver reads and writes container transient visibility through the host's
// active pointer. Every redirect+access pair runs under one lock so two callers
// can never interleave redirections.
type Resolver struct {
	mu   sync.Mutex
	host Host
}

func NewResolver(host Host) *Resolver {
	return &Resolver{host: host}
}

func (r *Resolver) Hidden(c Container) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.host.Activate(c); err != nil {
		return false, fmt.Errorf("activate %q: %w", c.Name(), err)
	}
	hidden, err := r.host.ActiveHidden()
	if err != nil {
		return false, fmt.Errorf("read transient visibility of %q: %w", c.Name(), err)
	}
	return hidden, nil
}

func (r *Resolver) SetHidden(c Container, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.host.Activate(c); err != nil {
		return fmt.Errorf("activate %q: %w", c.Name(), err)
	}
	if err := r.host.SetActiveHidden(hidden); err != nil {
		return fmt.Errorf("write transient visibility of %q: %w", c.Name(), err)
	}
	return nil
}
