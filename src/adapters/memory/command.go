package memory

import (
	"fmt"

	"relmap/src/commands"
	"relmap/src/models"

	"go.uber.org/zap"
)

// base carries the state shared by the memory command variants. A
// command holds no state beyond its binding; every Execute call is
// independent.
type base struct {
	def     *commands.Definition
	rel     commands.Relation
	opts    commands.Options
	dataset *Dataset
	logger  *zap.SugaredLogger
}

func newBase(def *commands.Definition, rel commands.Relation, opts commands.Options, logger *zap.SugaredLogger) (base, error) {
	dataset, ok := rel.Dataset().(*Dataset)
	if !ok {
		return base{}, fmt.Errorf("relation '%s' is not backed by a memory dataset", rel.Name())
	}
	return base{
		def:     def,
		rel:     rel,
		opts:    opts,
		dataset: dataset,
		logger:  logger,
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
// Validation failures abort the whole Execute call.
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
