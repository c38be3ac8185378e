package sqlitedb

import (
	"fmt"
	"sort"
	"strings"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// base carries the state shared by the sqlite command variants.
type base struct {
	def    *commands.Definition
	rel    commands.Relation
	opts   commands.Options
	table  *TableSource
	logger *zap.SugaredLogger
}

func newBase(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (base, error) {
	table, ok := rel.Dataset().(*TableSource)
	if !ok {
		return base{}, fmt.Errorf("relation '%s' is not backed by a sqlite table", rel.Name())
	}
	return base{
		def:    def,
		rel:    rel,
		opts:   opts,
		table:  table,
		logger: logger,
	}, nil
}

// Definition returns the descriptor the command was built from.
func (b *base) Definition() *commands.Definition {
	return b.def
}

// Relation returns the relation the command is bound to.
func (b *base) Relation() commands.Relation {
	return b.rel
}

// prepare runs the input transform and the validator over one tuple.
func (b *base) prepare(tuple models.Tuple) (models.Tuple, error) {
	prepared := tuple
	if b.opts.Input != nil {
		transformed, err := b.opts.Input(tuple)
		if err != nil {
			return nil, fmt.Errorf("error transforming input for command '%s': %w", b.def.RegisteredName(), err)
		}
		prepared = transformed
	}
	if b.opts.Validator != nil {
		if err := b.opts.Validator.Validate(prepared); err != nil {
			return nil, &commands.ValidationError{Command: b.def.RegisteredName(), Err: err}
		}
	}
	return prepared, nil
}

// statementColumns returns the tuple's attributes restricted to the
// table's columns, in a stable order. Column metadata injected by the
// gateway's ExtendCommandClass hook drives the filter; without it every
// attribute is used in sorted order.
func (b *base) statementColumns(tuple models.Tuple) []string {
	if meta, ok := b.def.Meta["columns"].([]string); ok && len(meta) > 0 {
		var columns []string
		for _, column := range meta {
			if _, exists := tuple[column]; exists {
				columns = append(columns, column)
			}
		}
		return columns
	}

	columns := make([]string, 0, len(tuple))
	for column := range tuple {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ", ")
}

func quoteColumns(columns []string) []string {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = fmt.Sprintf("%q", column)
	}
	return quoted
}
