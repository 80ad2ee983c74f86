package analysis

import (
	"fmt"
	"sync"
)

// Registry maps analyzer ids to implementations. It is built explicitly by
// whoever owns the process and passed to the code that needs it.
type Registry struct {
	mu        sync.RWMutex
	analyzers map[string]Analyzer
	order     []string
}

func NewRegistry(analyzers ...Analyzer) (*Registry, error) {
	r := &Registry{analyzers: make(map[string]Analyzer)}
	for _, a := range analyzers {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(a Analyzer) error {
	id := a.Info().ID
	if id == "" {
		return fmt.Errorf("failed to register analyzer: empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.analyzers[id]; exists {
		return fmt.Errorf("failed to register analyzer '%s': already registered", id)
	}
	r.analyzers[id] = a
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Lookup(id string) (Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.analyzers[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownAnalyzer, id)
	}
	return a, nil
}

// List returns analyzer metadata in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.analyzers[id].Info())
	}
	return infos
}

// Reset drops every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.analyzers = make(map[string]Analyzer)
	r.order = nil
}
