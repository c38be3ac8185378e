package sqlitedb

import (
	"fmt"
	"strings"

	"relmap/src/commands"
	"relmap/src/helpers"
	"relmap/src/models"

	"go.uber.org/zap"
)

// CreateCommand inserts one or many tuples into the relation's table.
type CreateCommand struct {
	base
}

// NewCreateCommand builds a sqlite Create command bound to the relation.
func NewCreateCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &CreateCommand{base: b}, nil
}

// Execute inserts each input tuple after transform and validation.
// Failures abort the remaining tuples; earlier inserts stay (no
// transaction guarantee at this layer). Results come back in input
// order.
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

		stored := prepared.Clone()
		if stored.ID() == "" {
			stored[models.IDField] = helpers.GenerateUUID()
		}

		columns := c.statementColumns(stored)
		if len(columns) == 0 {
			return nil, fmt.Errorf("no insertable attributes for table '%s'", c.table.table)
		}
		values := make([]interface{}, len(columns))
		for i, column := range columns {
			values[i] = stored[column]
		}

		query := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
			c.table.table, strings.Join(quoteColumns(columns), ", "), placeholders(len(columns)))
		if _, err := c.table.db.Exec(query, values...); err != nil {
			return nil, fmt.Errorf("error inserting into table '%s': %w", c.table.table, err)
		}
		results = append(results, stored)
	}
	return results, nil
}

// Rebind returns a new Create command bound to the given relation.
func (c *CreateCommand) Rebind(rel commands.Relation) commands.Command {
	cmd, err := NewCreateCommand(c.def, rel, c.opts, c.logger)
	if err != nil {
		c.logger.Errorf("Failed to rebind create command '%s': %v", c.def.RegisteredName(), err)
		return c
	}
	return cmd
}
