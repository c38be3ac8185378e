package sqlitedb

import (
	"fmt"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// DeleteCommand removes every row currently selected by the bound
// relation from the table.
type DeleteCommand struct {
	base
}

// NewDeleteCommand builds a sqlite Delete command bound to the relation.
func NewDeleteCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &DeleteCommand{base: b}, nil
}

// Execute takes no input. It deletes the selected rows and returns their
// tuples in relation iteration order.
func (c *DeleteCommand) Execute(input interface{}) ([]models.Tuple, error) {
	if input != nil {
		return nil, fmt.Errorf("delete command '%s' takes no input", c.def.RegisteredName())
	}

	query := fmt.Sprintf("DELETE FROM %q WHERE %q = ?", c.table.table, models.IDField)

	selected := c.rel.Tuples()
	results := make([]models.Tuple, 0, len(selected))
	for _, tuple := range selected {
		if _, err := c.table.db.Exec(query, tuple.ID()); err != nil {
			return nil, fmt.Errorf("error deleting from table '%s': %w", c.table.table, err)
		}
		results = append(results, tuple)
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
