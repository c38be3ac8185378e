package commands

import (
	"sync"

	"go.uber.org/zap"
)

// Resolver maps (verb, adapter) pairs to concrete command constructors.
// It replaces name-based subclass lookup with an explicit registration
// table: adapters install their namespaces at setup time and resolution
// is a pure lookup, never a dynamic construction.
//
// Registration happens during adapter setup, before any resolution call;
// lookups afterwards are read-only.
type Resolver struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]Constructor
	logger     *zap.SugaredLogger
}

// NewResolver creates an empty resolver.
func NewResolver(logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		namespaces: make(map[string]map[string]Constructor),
		logger:     logger,
	}
}

// Register installs the constructor for a verb inside an adapter's
// namespace. Registering the same (verb, adapter) pair again replaces
// the earlier constructor.
func (r *Resolver) Register(verb, adapterID string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	namespace, exists := r.namespaces[adapterID]
	if !exists {
		namespace = make(map[string]Constructor)
		r.namespaces[adapterID] = namespace
	}
	namespace[verb] = ctor

	if r.logger != nil {
		r.logger.Debugf("Registered command verb '%s' for adapter '%s'", verb, adapterID)
	}
}

// Resolve returns the constructor implementing the verb for the given
// adapter. An unknown adapter is a configuration error; a known adapter
// without the verb is a lookup error.
func (r *Resolver) Resolve(verb, adapterID string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	namespace, exists := r.namespaces[adapterID]
	if !exists {
		return nil, &AdapterNotPresentError{ID: adapterID, Role: "commands"}
	}
	ctor, exists := namespace[verb]
	if !exists {
		return nil, &CommandNotFoundError{Verb: verb, Adapter: adapterID}
	}
	return ctor, nil
}

// Adapters returns the identifiers currently carrying a namespace.
func (r *Resolver) Adapters() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.namespaces))
	for id := range r.namespaces {
		ids = append(ids, id)
	}
	return ids
}
