package models

// IDField is the attribute every persisted tuple carries once a gateway
// has accepted it.
const IDField = "id"

// Tuple is a single record flowing through relations, gateways and commands.
type Tuple map[string]interface{}

// ID returns the tuple identifier, or an empty string when the tuple has
// not been persisted yet.
func (t Tuple) ID() string {
	if v, ok := t[IDField]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Clone returns a shallow copy of the tuple.
func (t Tuple) Clone() Tuple {
	copied := make(Tuple, len(t))
	for k, v := range t {
		copied[k] = v
	}
	return copied
}

// Merge returns a copy of the tuple with the given attributes applied on
// top, attribute by attribute. The receiver is not modified.
func (t Tuple) Merge(attrs Tuple) Tuple {
	merged := t.Clone()
	for k, v := range attrs {
		merged[k] = v
	}
	return merged
}

// FieldDefinition describes one attribute of a relation's tuples.
type FieldDefinition struct {
	Name         string
	Type         string
	IsRequired   bool
	IsUnique     bool
	DefaultValue interface{}
}
