package memory

import (
	"fmt"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// DeleteCommand removes every tuple currently selected by the bound
// relation from the underlying dataset.
type DeleteCommand struct {
	base
}

// NewDeleteCommand builds a memory Delete command bound to the relation.
func NewDeleteCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &DeleteCommand{base: b}, nil
}

// Execute takes no input. It deletes the selected tuples and returns
// them in relation iteration order.
func (c *DeleteCommand) Execute(input interface{}) ([]models.Tuple, error) {
	if input != nil {
		return nil, fmt.Errorf("delete command '%s' takes no input", c.def.RegisteredName())
	}

	selected := c.rel.Tuples()
	results := make([]models.Tuple, 0, len(selected))
	for _, tuple := range selected {
		deleted, ok := c.dataset.Delete(tuple.ID())
		if !ok {
			return nil, fmt.Errorf("tuple '%s' vanished from dataset '%s' during delete", tuple.ID(), c.dataset.Name())
		}
		results = append(results, deleted)
	}
	return results, nil
}

// Rebind returns a new Delete command bound to the given relation.
func (c *DeleteCommand) Rebind(rel commands.Relation) commands.Command {
	cmd, err := NewDeleteCommand(c.def, rel, c.opts, c.logger)
	if err != nil {
		c.logger.Errorf("Failed to rebind delete command '%s': %v", c.def.RegisteredName(), err)
		return c
	}
	return cmd
}
