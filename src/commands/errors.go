package commands

import (
	"errors"
	"fmt"
)

// Configuration errors abort registry construction; nothing built is
// exposed when one of them is returned. Validation errors surface from
// Execute and abort only the call that produced them.

var (
	// ErrNoRegistry is returned when commands are requested before a
	// registry has been built.
	ErrNoRegistry = errors.New("command registry has not been built yet")

	// ErrReservedMethod is returned when a projected view method would
	// shadow a method the command itself defines.
	ErrReservedMethod = errors.New("view method name is reserved by the command")
)

// AdapterNotPresentError is returned when an adapter identifier is not
// present in the registry consulted for the given role.
type AdapterNotPresentError struct {
	ID   string
	Role string
}

func (e *AdapterNotPresentError) Error() string {
	return fmt.Sprintf("adapter '%s' is not registered for role '%s'", e.ID, e.Role)
}

// CommandNotFoundError is returned when an adapter namespace has no
// command registered under the requested verb, or when a registry lookup
// misses.
type CommandNotFoundError struct {
	Verb    string
	Adapter string
}

func (e *CommandNotFoundError) Error() string {
	if e.Adapter != "" {
		return fmt.Sprintf("no command registered for verb '%s' under adapter '%s'", e.Verb, e.Adapter)
	}
	return fmt.Sprintf("no command registered under name '%s'", e.Verb)
}

// RelationNotFoundError is returned when a command definition targets a
// relation that is not known to the builder.
type RelationNotFoundError struct {
	Relation string
}

func (e *RelationNotFoundError) Error() string {
	return fmt.Sprintf("relation '%s' was not found", e.Relation)
}

// PluginNotFoundError is returned when a definition asks for a plugin
// that was never registered for its adapter.
type PluginNotFoundError struct {
	Name    string
	Adapter string
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin '%s' is not registered for adapter '%s'", e.Name, e.Adapter)
}

// ViewNotFoundError is returned when a command is asked to delegate a
// view method its relation never declared.
type ViewNotFoundError struct {
	View     string
	Relation string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("relation '%s' does not expose a view method '%s'", e.Relation, e.View)
}

// ValidationError wraps the rule violations produced by a command's
// validator. The wrapped error may combine several rule failures.
type ValidationError struct {
	Command string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for command '%s': %v", e.Command, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
