package sources

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a well-formed request for an item the catalog does not
// have.
var ErrNotFound = errors.New("pokemon not found")

// NetworkError wraps transport failures and unexpected HTTP statuses.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
