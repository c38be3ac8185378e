package memory

import (
	"fmt"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// UpdateCommand merges one parameter set into every tuple currently
// selected by the bound relation.
type UpdateCommand struct {
	base
}

// NewUpdateCommand builds a memory Update command bound to the relation.
func NewUpdateCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &UpdateCommand{base: b}, nil
}

// Execute transforms and validates the parameter set, then applies it to
// every selected tuple. The mutated tuples are returned in relation
// iteration order.
func (c *UpdateCommand) Execute(input interface{}) ([]models.Tuple, error) {
	tuples, err := commands.NormalizeInput(input)
	if err != nil {
		return nil, err
	}
	if len(tuples) != 1 {
		return nil, fmt.Errorf("update command '%s' expects a single parameter set, got %d", c.def.RegisteredName(), len(tuples))
	}

	attrs, err := c.prepare(tuples[0])
	if err != nil {
		return nil, err
	}

	selected := c.rel.Tuples()
	results := make([]models.Tuple, 0, len(selected))
	for _, tuple := range selected {
		mutated, ok := c.dataset.Update(tuple.ID(), attrs)
		if !ok {
			return nil, fmt.Errorf("tuple '%s' vanished from dataset '%s' during update", tuple.ID(), c.dataset.Name())
		}
		results = append(results, mutated)
	}
	return results, nil
}

// Rebind returns a new Update command bound to the given relation.
func (c *UpdateCommand) Rebind(rel commands.Relation) commands.Command {
	cmd, err := NewUpdateCommand(c.def, rel, c.opts, c.logger)
	if err != nil {
		c.logger.Errorf("Failed to rebind update command '%s': %v", c.def.RegisteredName(), err)
		return c
	}
	return cmd
}
