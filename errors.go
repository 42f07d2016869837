package readable

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the scoring pipeline.
var (
	// ErrArtifactNotFound is returned by an ArtifactCache when a key is absent.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrCorruptArtifact is returned when an existing lexicon artifact cannot be decoded.
	ErrCorruptArtifact = errors.New("corrupt lexicon artifact")
	// ErrCountFailed is matched by every *CountError.
	ErrCountFailed = errors.New("keyword count failed")
)

// ArtifactError reports a failure to produce a lexicon artifact. Everything
// downstream depends on the artifact, so callers treat it as fatal.
type ArtifactError struct {
	Artifact string // Artifact name, e.g. "positive.json"
	Op       string // "read source", "write", ...
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("error generating %s: %s: %v", e.Artifact, e.Op, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// CountError reports that keywords of a lexicon could not be counted.
// It is distinct from a result with zero occurrences.
type CountError struct {
	Lexicon string
	Err     error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("counting %s: %v", e.Lexicon, e.Err)
}

func (e *CountError) Unwrap() error {
	return e.Err
}

// Is makes every CountError match ErrCountFailed.
func (e *CountError) Is(target error) bool {
	return target == ErrCountFailed
}

// AcquireError reports that the target text could not be obtained.
type AcquireError struct {
	Err error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquiring target text: %v", e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is an artifact failure that should abort the
// whole run.
func IsFatal(err error) bool {
	var ae *ArtifactError
	return errors.As(err, &ae)
}
