package sqlitedb

import (
	"fmt"
	"strings"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// UpdateCommand merges one parameter set into every row currently
// selected by the bound relation.
type UpdateCommand struct {
	base
}

// NewUpdateCommand builds a sqlite Update command bound to the relation.
func NewUpdateCommand(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (commands.Command, error) {
	b, err := newBase(def, rel, opts, logger)
	if err != nil {
		return nil, err
	}
	return &UpdateCommand{base: b}, nil
}

// Execute transforms and validates the parameter set, then applies it to
// every selected row by identifier. The mutated tuples are returned in
// relation iteration order.
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

	columns := c.statementColumns(attrs)
	if len(columns) == 0 {
		return nil, fmt.Errorf("no updatable attributes for table '%s'", c.table.table)
	}
	assignments := make([]string, len(columns))
	values := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%q = ?", column)
		values = append(values, attrs[column])
	}

	query := fmt.Sprintf("UPDATE %q SET %s WHERE %q = ?",
		c.table.table, strings.Join(assignments, ", "), models.IDField)

	selected := c.rel.Tuples()
	results := make([]models.Tuple, 0, len(selected))
	for _, tuple := range selected {
		args := append(append([]interface{}{}, values...), tuple.ID())
		if _, err := c.table.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("error updating table '%s': %w", c.table.table, err)
		}
		results = append(results, tuple.Merge(attrs))
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
