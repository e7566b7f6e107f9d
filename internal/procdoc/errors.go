package procdoc

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by BuildError. Any of them aborts the build.
var (
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrUnknownOwner    = errors.New("unknown owner")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrKindMismatch    = errors.New("kind mismatch")
	ErrUnresolvedLinks = errors.New("unresolved links")
)

// BuildError is a fatal documentation build error. Entry names the entry
// being processed and Ref the name it referred to, if any.
type BuildError struct {
	Entry string
	Ref   string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("entry %q: %v: %q", e.Entry, e.Err, e.Ref)
	}
	return fmt.Sprintf("entry %q: %v", e.Entry, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// IsBuildError reports whether err carries a BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}
