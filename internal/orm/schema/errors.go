package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a table, attribute, datatype, namespace,
	// directory, reference or index cannot be resolved
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a name is registered twice
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCycleDetected is returned when the generalization/composition graph
	// cannot be ordered
	ErrCycleDetected = errors.New("circular dependency detected")

	// ErrEmptyResult is returned when a statement would have no columns
	ErrEmptyResult = errors.New("empty result")

	// ErrNotImplemented is returned for shapes the generator cannot derive
	ErrNotImplemented = errors.New("not implemented")

	// ErrFrozen is returned when a builder is used after Build
	ErrFrozen = errors.New("dictionary already built")

	// ErrInvalid is returned when an entity violates a structural invariant
	ErrInvalid = errors.New("invalid definition")
)

// Error carries the offending identifier and the owning dictionary's name.
// Kind is one of the sentinel errors above and is matched by errors.Is.
type Error struct {
	Kind       error
	Dictionary string
	Object     string // "table", "attribute", "datatype", ...
	Name       string
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Kind, e.Object, e.Name)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Dictionary != "" {
		msg += " in dictionary " + e.Dictionary
	}
	return msg
}

// Unwrap returns the sentinel kind
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, dictionary, object, name, detail string) *Error {
	return &Error{
		Kind:       kind,
		Dictionary: dictionary,
		Object:     object,
		Name:       name,
		Detail:     detail,
	}
}

// NotFound builds an ErrNotFound error
func NotFound(dictionary, object, name string) error {
	return newError(ErrNotFound, dictionary, object, name, "")
}

// NotFoundIn builds an ErrNotFound error with a detail such as the owning table
func NotFoundIn(dictionary, object, name, detail string) error {
	return newError(ErrNotFound, dictionary, object, name, detail)
}

// DuplicateKey builds an ErrDuplicateKey error
func DuplicateKey(dictionary, object, name string) error {
	return newError(ErrDuplicateKey, dictionary, object, name, "")
}

// EmptyResult builds an ErrEmptyResult error
func EmptyResult(dictionary, object, name, detail string) error {
	return newError(ErrEmptyResult, dictionary, object, name, detail)
}
