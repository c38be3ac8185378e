package relation

import (
	"relmap/src/models"

	"go.uber.org/zap"
)

// FactoryImpl is a concrete implementation of Factory.
type FactoryImpl struct {
	logger *zap.SugaredLogger
}

// Factory builds relations with a standard view vocabulary installed.
type Factory interface {
	NewRelation(name, gatewayID string, source TupleSource) *Relation
}

// NewFactory creates a new instance of Factory.
func NewFactory(logger *zap.SugaredLogger) Factory {
	return &FactoryImpl{logger: logger}
}

// NewRelation creates a relation over the dataset source and registers
// the standard view methods every relation exposes: where (refining),
// count and first (terminal).
func (f *FactoryImpl) NewRelation(name, gatewayID string, source TupleSource) *Relation {
	rel := New(name, gatewayID, source)

	rel.RegisterView("where", func(r *Relation, args ...interface{}) (interface{}, error) {
		attrs, err := attrsArg(args)
		if err != nil {
			return nil, err
		}
		return r.Where(attrs), nil
	})
	rel.RegisterView("count", func(r *Relation, args ...interface{}) (interface{}, error) {
		return r.Count(), nil
	})
	rel.RegisterView("first", func(r *Relation, args ...interface{}) (interface{}, error) {
		return r.First(), nil
	})

	return rel
}

func attrsArg(args []interface{}) (models.Tuple, error) {
	if len(args) != 1 {
		return nil, errWhereArgs
	}
	switch v := args[0].(type) {
	case models.Tuple:
		return v, nil
	case map[string]interface{}:
		return models.Tuple(v), nil
	default:
		return nil, errWhereArgs
	}
}
