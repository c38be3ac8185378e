package relation

// Add custom error definitions here
import "errors"

// errWhereArgs is returned when the where view is invoked with anything
// but a single attribute map.
var errWhereArgs = errors.New("where expects a single attribute map argument")
