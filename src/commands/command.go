package commands

import (
	"fmt"

	"relmap/src/models"

	"go.uber.org/zap"
)

// Verbs understood by the shipped adapters. The resolver does not limit
// the set; adapters may register constructors for additional verbs.
const (
	VerbCreate = "Create"
	VerbUpdate = "Update"
	VerbDelete = "Delete"
)

// Relation is the narrow contract the command core consumes. The query
// engine behind it is somebody else's problem; commands only need the
// relation's identity, its view vocabulary and the tuples it currently
// selects.
type Relation interface {
	// Name identifies the relation inside the command registry.
	Name() string

	// GatewayID names the gateway owning the relation's dataset.
	GatewayID() string

	// ViewMethodNames lists the read operations the relation exposes for
	// delegation, in declaration order.
	ViewMethodNames() []string

	// Invoke dispatches a view method by name. sameType reports whether
	// the result is another relation of the same kind, in which case the
	// caller may rewrap it instead of handing out the bare relation.
	Invoke(name string, args ...interface{}) (result interface{}, sameType bool, err error)

	// Tuples returns the tuples currently selected by the relation, in
	// iteration order.
	Tuples() []models.Tuple

	// Dataset returns the adapter-specific dataset handle backing the
	// relation.
	Dataset() interface{}
}

// Gateway is the storage-adapter contract consumed during registry
// construction.
type Gateway interface {
	// ExtendCommandClass lets the adapter adjust a command definition to
	// the shape of the dataset it will run against, before any instance
	// is built. Called once per (definition, relation) pair.
	ExtendCommandClass(def *Definition, dataset interface{}) error
}

// Command is one verb bound to one relation. Instances are built once
// during registry construction and are immutable afterwards; Rebind
// returns a fresh instance instead of mutating the receiver.
type Command interface {
	// Execute runs the verb against the bound relation.
	Execute(input interface{}) ([]models.Tuple, error)

	// Definition returns the descriptor the command was built from.
	Definition() *Definition

	// Relation returns the relation the command is bound to.
	Relation() Relation

	// Rebind returns a new command of the same kind and options, bound
	// to the given relation.
	Rebind(rel Relation) Command
}

// Constructor builds a command instance for one (verb, adapter) pair.
type Constructor func(def *Definition, rel Relation, opts Options, logger *zap.SugaredLogger) (Command, error)

// NormalizeInput turns the accepted command input shapes into a tuple
// sequence. Adapters share this so one-or-many inputs behave the same
// everywhere.
func NormalizeInput(input interface{}) ([]models.Tuple, error) {
	switch v := input.(type) {
	case models.Tuple:
		return []models.Tuple{v}, nil
	case map[string]interface{}:
		return []models.Tuple{models.Tuple(v)}, nil
	case []models.Tuple:
		return v, nil
	case []map[string]interface{}:
		tuples := make([]models.Tuple, len(v))
		for i, m := range v {
			tuples[i] = models.Tuple(m)
		}
		return tuples, nil
	default:
		return nil, fmt.Errorf("unsupported command input type %T", input)
	}
}

// CallView invokes one of the relation's projected view methods through
// the command. Results that are relations of the same kind come back
// rewrapped as a new command instance; anything else is returned as-is.
func CallView(cmd Command, name string, args ...interface{}) (interface{}, error) {
	surface := cmd.Definition().surface
	if surface == nil {
		return nil, &ViewNotFoundError{View: name, Relation: cmd.Relation().Name()}
	}
	return surface.Call(cmd, name, args...)
}
