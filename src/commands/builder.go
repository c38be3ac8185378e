package commands

import (
	"fmt"

	"go.uber.org/zap"
)

type extendKey struct {
	def      *Definition
	relation string
}

// Builder assembles the command registry from the declared definitions,
// the known relations and their gateways. Construction is a one-time,
// single-threaded setup phase: either the whole registry builds or the
// first configuration error aborts it, so readers never see a partially
// built registry.
type Builder struct {
	resolver  *Resolver
	relations map[string]Relation
	gateways  map[string]Gateway
	defs      []*Definition
	overrides Options
	extended  map[extendKey]bool
	logger    *zap.SugaredLogger
}

// NewBuilder creates a builder over the given resolver, relations and
// gateways.
func NewBuilder(resolver *Resolver, relations map[string]Relation, gateways map[string]Gateway, logger *zap.SugaredLogger) *Builder {
	return &Builder{
		resolver:  resolver,
		relations: relations,
		gateways:  gateways,
		extended:  make(map[extendKey]bool),
		logger:    logger,
	}
}

// Add appends command definitions in declaration order. Order matters
// only for definitions registering under the same (relation, name) key,
// where the later declaration wins.
func (b *Builder) Add(defs ...*Definition) *Builder {
	b.defs = append(b.defs, defs...)
	return b
}

// WithOverrides sets options merged over every definition's declared
// options at instantiation time.
func (b *Builder) WithOverrides(opts Options) *Builder {
	b.overrides = opts
	return b
}

// Build walks the declared definitions and produces the registry.
func (b *Builder) Build() (*Registry, error) {
	registry := make(map[string]map[string]Command)

	for _, def := range b.defs {
		// Definitions without a target relation are a deliberate filter,
		// not an error.
		if def.RelationName == "" {
			if b.logger != nil {
				b.logger.Debugf("Skipping command '%s': no target relation", def.RegisteredName())
			}
			continue
		}

		rel, exists := b.relations[def.RelationName]
		if !exists {
			return nil, &RelationNotFoundError{Relation: def.RelationName}
		}

		name := def.RegisteredName()

		gateway, exists := b.gateways[rel.GatewayID()]
		if !exists {
			return nil, &AdapterNotPresentError{ID: rel.GatewayID(), Role: "gateway"}
		}

		// Let the adapter adjust the definition to the dataset shape,
		// once per (definition, relation) pair.
		key := extendKey{def: def, relation: rel.Name()}
		if !b.extended[key] {
			if err := gateway.ExtendCommandClass(def, rel.Dataset()); err != nil {
				return nil, fmt.Errorf("error extending command '%s' for relation '%s': %w", name, rel.Name(), err)
			}
			b.extended[key] = true
		}

		// Attach the relation's delegation surface. Attaching twice must
		// not duplicate bindings, so an existing surface is kept.
		if def.surface == nil {
			def.surface = ProjectSurface(rel)
		}

		cmd, err := def.Build(b.resolver, rel, b.overrides, b.logger)
		if err != nil {
			return nil, err
		}

		relCommands, exists := registry[rel.Name()]
		if !exists {
			relCommands = make(map[string]Command)
			registry[rel.Name()] = relCommands
		}
		// Same-key collisions resolve to the later declaration.
		relCommands[name] = cmd

		if b.logger != nil {
			b.logger.Debugf("Registered command '%s' for relation '%s' (verb %s, adapter %s)",
				name, rel.Name(), def.Verb, def.AdapterID)
		}
	}

	return &Registry{commands: registry}, nil
}
