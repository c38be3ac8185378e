package memory

import (
	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// CreateCommand persists one or many tuples into the relation's dataset.
type CreateCommand struct {
	base
}

// NewCreateCommand builds a memory Create command bound to the relation.
func NewCreateCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &CreateCommand{base: b}, nil
}

// Execute normalizes the input to a tuple sequence and persists each
// tuple after transform and validation. The first validation failure
// aborts the remaining tuples; earlier inserts are not rolled back.
// Results come back in input order.
func (c *CreateCommand) Execute(input interface{}) ([]models.Tuple, error) {
	tuples, err := commands.NormalizeInput(input)
	if err != nil {
		return nil, err
	}

	results := make([]models.Tuple, 0, len(tuples))
	for _, tuple := range tuples {
		prepared, err := c.prepare(tuple)
		if err != nil {
			return nil, err
		}
		results = append(results, c.dataset.Insert(prepared))
	}
	return results, nil
}

// Rebind returns a new Create command bound to the given relation.
func (c *CreateCommand) Rebind(rel commands.Relation) commands.Command {
	cmd, err := NewCreateCommand(c.def, rel, c.opts, c.logger)
	if err != nil {
		// The refined relation shares the original's dataset kind, so
		// this only happens when a foreign relation is passed in.
		c.logger.Errorf("Failed to rebind create command '%s': %v", c.def.RegisteredName(), err)
		return c
	}
	return cmd
}
