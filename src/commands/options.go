package commands

import (
	"relmap/src/models"

	"go.uber.org/multierr"
)

// ResultMode controls whether a command reports a single tuple or the
// full result sequence.
type ResultMode string

const (
	ResultMany ResultMode = "many"
	ResultOne  ResultMode = "one"
)

// InputFunc transforms a raw input tuple before validation and
// persistence.
type InputFunc func(models.Tuple) (models.Tuple, error)

// Rule checks one constraint on an input tuple.
type Rule func(models.Tuple) error

// Validator runs every rule against a tuple and combines the failures
// into a single error.
type Validator []Rule

// Validate returns nil when every rule passes. Failures from all rules
// are combined so the caller sees the full set of violations at once.
func (v Validator) Validate(tuple models.Tuple) error {
	var err error
	for _, rule := range v {
		err = multierr.Append(err, rule(tuple))
	}
	return err
}

// Options carries the input transform, validator and result policy a
// command definition declares.
type Options struct {
	Input     InputFunc
	Validator Validator
	Result    ResultMode
}

// Merge returns the receiver's options with the override's set fields
// applied on top, key by key. Neither value is modified.
func (o Options) Merge(override Options) Options {
	merged := o
	if override.Input != nil {
		merged.Input = override.Input
	}
	if override.Validator != nil {
		merged.Validator = override.Validator
	}
	if override.Result != "" {
		merged.Result = override.Result
	}
	return merged
}
