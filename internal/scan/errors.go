package scan

import (
	"errors"
	"fmt"
)

// ErrInvalidRepoPath is returned when the repository root does not
// exist or is not a directory.
var ErrInvalidRepoPath = errors.New("invalid repository path")

// ErrNoEligibleFiles is returned when filtering and loading leave
// nothing to send to the model.
var ErrNoEligibleFiles = errors.New("no eligible files under repository root")

// PatternError reports a malformed include/exclude glob. It is raised
// before any filesystem traversal happens.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed glob pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
