package commands

import (
	"fmt"

	"relmap/src/helpers"

	"go.uber.org/zap"
)

// Definition describes one declared command: its verb, the adapter it
// resolves against, the relation it targets and its option defaults.
// Definitions are declared once at load time; after declaration only
// plugins and the gateway's ExtendCommandClass hook may change them, and
// both run before the registry is built.
type Definition struct {
	// TypeName is the declared simple name of the command, e.g.
	// "CreateUser". The registered default name derives from it.
	TypeName string

	// Verb is the operation kind (Create, Update, Delete, ...).
	Verb string

	// AdapterID names the adapter whose namespace resolves the verb.
	AdapterID string

	// RelationName is the relation the command targets. Definitions
	// without one are skipped during registry construction.
	RelationName string

	// Name overrides the derived default name when set.
	Name string

	// Options are the declared defaults, merged with builder overrides
	// at instantiation time.
	Options Options

	// Meta is scratch space for the gateway's ExtendCommandClass hook,
	// e.g. column metadata injected by the sqlite adapter.
	Meta map[string]interface{}

	surface *Surface
}

// NewDefinition declares a command with the given simple name, verb and
// adapter.
func NewDefinition(typeName, verb, adapterID string) *Definition {
	return &Definition{
		TypeName:  typeName,
		Verb:      verb,
		AdapterID: adapterID,
		Meta:      make(map[string]interface{}),
	}
}

// WithRelation sets the target relation name.
func (d *Definition) WithRelation(name string) *Definition {
	d.RelationName = name
	return d
}

// WithName overrides the registered command name.
func (d *Definition) WithName(name string) *Definition {
	d.Name = name
	return d
}

// WithOptions sets the declared option defaults.
func (d *Definition) WithOptions(opts Options) *Definition {
	d.Options = opts
	return d
}

// DefaultName derives the registered name from the definition's simple
// name: lower case, underscore separated. The transform is pure, so the
// same definition always yields the same name.
func (d *Definition) DefaultName() string {
	if d.TypeName != "" {
		return helpers.Underscore(d.TypeName)
	}
	return helpers.Underscore(d.Verb)
}

// RegisteredName returns the explicit name override when present, else
// the derived default name.
func (d *Definition) RegisteredName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.DefaultName()
}

// Use applies the named plugin to the definition. The plugin is looked
// up scoped to the definition's own adapter and applied immediately, so
// later plugins see earlier ones' changes. Must be called before the
// registry is built.
func (d *Definition) Use(registry *PluginRegistry, name string, opts map[string]interface{}) error {
	plugin, err := registry.Fetch(name, d.AdapterID)
	if err != nil {
		return err
	}
	if err := plugin(d, opts); err != nil {
		return fmt.Errorf("error applying plugin '%s' to command '%s': %w", name, d.RegisteredName(), err)
	}
	return nil
}

// Build resolves the adapter-specific constructor for the definition's
// verb and instantiates the command against the given relation. The
// declared options are merged with the overrides, override winning key
// by key.
func (d *Definition) Build(resolver *Resolver, rel Relation, overrides Options, logger *zap.SugaredLogger) (Command, error) {
	ctor, err := resolver.Resolve(d.Verb, d.AdapterID)
	if err != nil {
		return nil, err
	}
	cmd, err := ctor(d, rel, d.Options.Merge(overrides), logger)
	if err != nil {
		return nil, fmt.Errorf("error building command '%s' for relation '%s': %w", d.RegisteredName(), rel.Name(), err)
	}
	return cmd, nil
}
