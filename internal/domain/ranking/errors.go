package ranking

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidLength        = errors.New("invalid submission length")
	ErrEmptyInput           = errors.New("no submissions to aggregate")
	ErrInvalidReference     = errors.New("invalid reference set")
	ErrNotPermutation       = errors.New("submission is not a permutation of the reference items")
	ErrUnknownItem          = errors.New("unknown item")
	ErrDuplicateParticipant = errors.New("duplicate participant")
)

// LengthError reports a submission whose length differs from the reference set size.
// It matches ErrInvalidLength under errors.Is.
type LengthError struct {
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid submission length: got %d, want %d", e.Got, e.Want)
}

// Is reports whether target is ErrInvalidLength.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}
