package relation

import (
	"fmt"

	"relmap/src/models"
)

// TupleSource is the dataset handle a relation reads from. The memory
// and sqlite gateways both hand out sources.
type TupleSource interface {
	Tuples() []models.Tuple
}

// Predicate decides whether a tuple belongs to a refined relation.
type Predicate func(models.Tuple) bool

// ViewFunc implements one named view method. A view returning a
// *Relation produces a refined relation of the same kind; any other
// return value is terminal.
type ViewFunc func(r *Relation, args ...interface{}) (interface{}, error)

// Relation is a named, queryable collection of tuples backed by a
// gateway dataset. Refinement operations return new relations sharing
// the same source; a relation never mutates its source itself.
type Relation struct {
	name       string
	gatewayID  string
	source     TupleSource
	predicates []Predicate
	views      map[string]ViewFunc
	viewNames  []string
}

// New creates a relation over the given dataset source.
func New(name, gatewayID string, source TupleSource) *Relation {
	return &Relation{
		name:      name,
		gatewayID: gatewayID,
		source:    source,
		views:     make(map[string]ViewFunc),
	}
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// GatewayID returns the identifier of the gateway owning the dataset.
func (r *Relation) GatewayID() string {
	return r.gatewayID
}

// Dataset returns the dataset handle backing the relation.
func (r *Relation) Dataset() interface{} {
	return r.source
}

// ViewMethodNames returns the declared view methods in declaration
// order.
func (r *Relation) ViewMethodNames() []string {
	names := make([]string, len(r.viewNames))
	copy(names, r.viewNames)
	return names
}

// RegisterView declares a named view method on the relation. Declaring
// the same name again replaces the function but keeps its position.
func (r *Relation) RegisterView(name string, fn ViewFunc) *Relation {
	if _, exists := r.views[name]; !exists {
		r.viewNames = append(r.viewNames, name)
	}
	r.views[name] = fn
	return r
}

// Invoke dispatches a view method by name. Views answering with a
// *Relation report sameType so the caller can rewrap the result.
func (r *Relation) Invoke(name string, args ...interface{}) (interface{}, bool, error) {
	fn, exists := r.views[name]
	if !exists {
		return nil, false, fmt.Errorf("relation '%s' has no view method '%s'", r.name, name)
	}
	result, err := fn(r, args...)
	if err != nil {
		return nil, false, fmt.Errorf("error invoking view '%s' on relation '%s': %w", name, r.name, err)
	}
	if refined, ok := result.(*Relation); ok {
		return refined, true, nil
	}
	return result, false, nil
}

// Tuples returns the tuples currently selected by the relation, in
// source iteration order.
func (r *Relation) Tuples() []models.Tuple {
	source := r.source.Tuples()
	if len(r.predicates) == 0 {
		return source
	}
	selected := make([]models.Tuple, 0, len(source))
	for _, tuple := range source {
		if r.matches(tuple) {
			selected = append(selected, tuple)
		}
	}
	return selected
}

// Count returns the number of tuples currently selected.
func (r *Relation) Count() int {
	return len(r.Tuples())
}

// First returns the first selected tuple, or nil when the relation is
// empty.
func (r *Relation) First() models.Tuple {
	tuples := r.Tuples()
	if len(tuples) == 0 {
		return nil
	}
	return tuples[0]
}

// Restrict returns a refined relation keeping only tuples matching the
// predicate. The receiver is unchanged.
func (r *Relation) Restrict(pred Predicate) *Relation {
	refined := r.clone()
	refined.predicates = append(refined.predicates, pred)
	return refined
}

// Where returns a refined relation keeping tuples whose attributes equal
// every given value.
func (r *Relation) Where(attrs models.Tuple) *Relation {
	return r.Restrict(func(tuple models.Tuple) bool {
		for field, want := range attrs {
			got, exists := tuple[field]
			if !exists || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
				return false
			}
		}
		return true
	})
}

func (r *Relation) matches(tuple models.Tuple) bool {
	for _, pred := range r.predicates {
		if !pred(tuple) {
			return false
		}
	}
	return true
}

func (r *Relation) clone() *Relation {
	copied := &Relation{
		name:      r.name,
		gatewayID: r.gatewayID,
		source:    r.source,
		views:     r.views,
	}
	copied.predicates = append(copied.predicates, r.predicates...)
	copied.viewNames = append(copied.viewNames, r.viewNames...)
	return copied
}
