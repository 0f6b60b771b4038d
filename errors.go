package gores

import (
	"fmt"

	"github.com/go-errors/errors"
)

type Kind int8

const (
	InvalidArgument Kind = iota + 1
	NotFound
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotFound:
		return "not found"
	case IOFailure:
		return "io failure"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// LoadError describes why a resource operation failed. Err is the
// underlying filesystem or decoder error, if any.
type LoadError struct {
	Kind     Kind
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Filename)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(kind Kind, filename string, cause error) error {
	return errors.Wrap(&LoadError{Kind: kind, Filename: filename, Err: cause}, 1)
}

func KindOf(err error) (Kind, bool) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
