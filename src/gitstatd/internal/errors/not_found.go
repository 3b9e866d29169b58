package errors

import (
	stderr "errors"
	"fmt"
)

// NotARepositoryError is a service domain error for a path that no git
// repository encloses. It is routine: the resolver answers such requests
// with a two-field response instead of failing.
type NotARepositoryError struct {
	Path string
}

// Error is an implementation of the error interface.
func (n *NotARepositoryError) Error() string {
	return fmt.Sprintf("no git repository encloses %q", n.Path)
}

// IsNotARepository reports whether NotARepositoryError is part of the
// error chain.
func IsNotARepository(e error) bool {
	var nr *NotARepositoryError
	return stderr.As(e, &nr)
}
