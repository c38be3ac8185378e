package commands

import "sort"

// Registry is the built command registry: relation name -> command name
// -> command instance. It is assembled once by the Builder and read-only
// afterwards; its lifetime is tied to the mapping session that built it.
type Registry struct {
	commands map[string]map[string]Command
}

// Lookup returns the command registered for the relation under the given
// name.
func (r *Registry) Lookup(relationName, commandName string) (Command, error) {
	relCommands, exists := r.commands[relationName]
	if !exists {
		return nil, &RelationNotFoundError{Relation: relationName}
	}
	cmd, exists := relCommands[commandName]
	if !exists {
		return nil, &CommandNotFoundError{Verb: commandName}
	}
	return cmd, nil
}

// Relation returns every command registered for a relation, keyed by
// registered name. The returned map is a copy.
func (r *Registry) Relation(relationName string) (map[string]Command, bool) {
	relCommands, exists := r.commands[relationName]
	if !exists {
		return nil, false
	}
	copied := make(map[string]Command, len(relCommands))
	for name, cmd := range relCommands {
		copied[name] = cmd
	}
	return copied, true
}

// RelationNames returns the sorted relation names present in the
// registry.
func (r *Registry) RelationNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of registered command instances.
func (r *Registry) Len() int {
	total := 0
	for _, relCommands := range r.commands {
		total += len(relCommands)
	}
	return total
}
