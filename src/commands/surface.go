package commands

// reservedMethods are the names a command defines itself. A relation
// view with one of these names is never projected; the command's own
// method always takes precedence.
var reservedMethods = map[string]bool{
	"execute":    true,
	"build":      true,
	"use":        true,
	"registry":   true,
	"relation":   true,
	"definition": true,
	"rebind":     true,
	"call":       true,
}

// Surface is the delegation layer projected from a relation's view
// vocabulary. It is generated once per command definition and installed
// below the command's own methods: invoking a projected view forwards to
// the relation, and responses that are relations of the same kind come
// back rewrapped as a new command instance so composed chains keep
// behaving like the relation they wrap.
type Surface struct {
	relationName string
	views        map[string]bool
	skipped      map[string]bool
}

// ProjectSurface builds the delegation surface for a relation. View
// names colliding with command methods are recorded but not installed.
func ProjectSurface(rel Relation) *Surface {
	surface := &Surface{
		relationName: rel.Name(),
		views:        make(map[string]bool),
		skipped:      make(map[string]bool),
	}
	for _, name := range rel.ViewMethodNames() {
		if reservedMethods[name] {
			surface.skipped[name] = true
			continue
		}
		surface.views[name] = true
	}
	return surface
}

// Call forwards a projected view method to the command's relation. When
// the relation answers with another relation of its own kind the result
// is a new command instance bound to it, preserving the command's verb
// and options; any other response is returned unchanged.
func (s *Surface) Call(cmd Command, name string, args ...interface{}) (interface{}, error) {
	if s.skipped[name] {
		return nil, ErrReservedMethod
	}
	if !s.views[name] {
		return nil, &ViewNotFoundError{View: name, Relation: cmd.Relation().Name()}
	}

	result, sameType, err := cmd.Relation().Invoke(name, args...)
	if err != nil {
		return nil, err
	}
	if sameType {
		refined, ok := result.(Relation)
		if !ok {
			return nil, &ViewNotFoundError{View: name, Relation: cmd.Relation().Name()}
		}
		return cmd.Rebind(refined), nil
	}
	return result, nil
}

// Views returns whether the surface projects the given view name.
func (s *Surface) Views(name string) bool {
	return s.views[name]
}
