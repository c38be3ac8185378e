package directors

import (
	"fmt"
	"sync"

	"relmap/src/commands"
	"relmap/src/settings"

	"go.uber.org/zap"
)

// MapperService ties one mapping session together: the adapter and
// plugin registries, the declared relations and gateways, and the
// command registry built from them. Registries are dependency-injected
// objects scoped to the session, not package globals.
type MapperService struct {
	settings    *settings.Arguments
	logger      *zap.SugaredLogger
	resolver    *commands.Resolver
	plugins     *commands.PluginRegistry
	relations   map[string]commands.Relation
	gateways    map[string]commands.Gateway
	definitions []*commands.Definition
	registry    *commands.Registry
	mu          sync.RWMutex
}

// NewMapperService creates a mapping session over the given settings.
func NewMapperService(args *settings.Arguments, logger *zap.SugaredLogger) *MapperService {
	return &MapperService{
		settings:  args,
		logger:    logger,
		resolver:  commands.NewResolver(logger),
		plugins:   commands.NewPluginRegistry(),
		relations: make(map[string]commands.Relation),
		gateways:  make(map[string]commands.Gateway),
	}
}

// Resolver returns the session's command resolver so adapters can
// install their namespaces.
func (s *MapperService) Resolver() *commands.Resolver {
	return s.resolver
}

// Plugins returns the session's plugin registry.
func (s *MapperService) Plugins() *commands.PluginRegistry {
	return s.plugins
}

// AddGateway registers a gateway under its adapter identifier.
func (s *MapperService) AddGateway(id string, gateway commands.Gateway) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gateways[id] = gateway
}

// AddRelation registers a relation under its own name.
func (s *MapperService) AddRelation(rel commands.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.relations[rel.Name()]; exists {
		return fmt.Errorf("relation '%s' already registered", rel.Name())
	}
	s.relations[rel.Name()] = rel
	if s.settings.Debug {
		s.logger.Debugf("Registered relation '%s' on gateway '%s'", rel.Name(), rel.GatewayID())
	}
	return nil
}

// AddDefinition appends command definitions. Declaration order is
// preserved; it decides same-key collisions during setup.
func (s *MapperService) AddDefinition(defs ...*commands.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions = append(s.definitions, defs...)
}

// Setup builds the command registry. It runs once per session; the
// registry becomes visible only after the whole build succeeded.
func (s *MapperService) Setup() (*commands.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry != nil {
		return s.registry, nil
	}

	builder := commands.NewBuilder(s.resolver, s.relations, s.gateways, s.logger)
	builder.Add(s.definitions...)

	registry, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	s.registry = registry
	s.logger.Infof("Command registry built: %d commands across %d relations",
		registry.Len(), len(registry.RelationNames()))
	return registry, nil
}

// Commands returns the built registry, or an error when Setup has not
// run successfully yet.
func (s *MapperService) Commands() (*commands.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.registry == nil {
		return nil, commands.ErrNoRegistry
	}
	return s.registry, nil
}
