package complaint

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced complaint id does not exist.
// No mutation is performed in that case.
var ErrNotFound = errors.New("complaint not found")

// ErrNoEvidence is returned when a submission carries no photo, no
// description and no audio. The submission is blocked before any state is
// created.
var ErrNoEvidence = errors.New("no evidence provided: attach a photo, description or voice note")

// ErrIllegalTransition is returned when the configured transition policy
// rejects a stage change. The default policy never rejects.
var ErrIllegalTransition = errors.New("transition not permitted by policy")

// PersistenceError reports that a durable write failed. The in-memory
// collection has still been updated, so the session stays usable, but the
// change is at risk of loss on restart.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
