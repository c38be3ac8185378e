package commands

import (
	"relmap/src/models"

	"go.uber.org/zap"
)

// Test doubles for the relation and gateway contracts.

type fakeRelation struct {
	name      string
	gatewayID string
	views     []string
	tuples    []models.Tuple
	dataset   interface{}
}

func (r *fakeRelation) Name() string              { return r.name }
func (r *fakeRelation) GatewayID() string         { return r.gatewayID }
func (r *fakeRelation) ViewMethodNames() []string { return r.views }
func (r *fakeRelation) Tuples() []models.Tuple    { return r.tuples }
func (r *fakeRelation) Dataset() interface{}      { return r.dataset }

func (r *fakeRelation) Invoke(name string, args ...interface{}) (interface{}, bool, error) {
	switch name {
	case "refine":
		refined := &fakeRelation{
			name:      r.name,
			gatewayID: r.gatewayID,
			views:     r.views,
			dataset:   r.dataset,
		}
		if len(r.tuples) > 0 {
			refined.tuples = r.tuples[:1]
		}
		return refined, true, nil
	case "count":
		return len(r.tuples), false, nil
	default:
		return nil, false, &ViewNotFoundError{View: name, Relation: r.name}
	}
}

type fakeGateway struct {
	extendCount map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{extendCount: make(map[string]int)}
}

func (g *fakeGateway) ExtendCommandClass(def *Definition, dataset interface{}) error {
	g.extendCount[def.RegisteredName()]++
	def.Meta["extended"] = true
	return nil
}

type fakeCommand struct {
	def  *Definition
	rel  Relation
	opts Options
}

func (c *fakeCommand) Execute(input interface{}) ([]models.Tuple, error) {
	return c.rel.Tuples(), nil
}

func (c *fakeCommand) Definition() *Definition { return c.def }
func (c *fakeCommand) Relation() Relation      { return c.rel }

func (c *fakeCommand) Rebind(rel Relation) Command {
	return &fakeCommand{def: c.def, rel: rel, opts: c.opts}
}

func newFakeConstructor() Constructor {
	return func(def *Definition, rel Relation, opts Options, logger *zap.SugaredLogger) (Command, error) {
		return &fakeCommand{def: def, rel: rel, opts: opts}, nil
	}
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
