package book

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected list and history operations.
var (
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrRecordNotFound  = errors.New("record not found")
	ErrHistoryBounds   = errors.New("history bounds")

	ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", ErrHistoryBounds)
	ErrNothingToRedo = fmt.Errorf("%w: nothing to redo", ErrHistoryBounds)
)

// RecordError names the operation and the record it was rejected for.
// Err is ErrDuplicateRecord or ErrRecordNotFound.
type RecordError struct {
	Op     string
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func duplicate[T Entity[T]](op string, r T) error {
	return &RecordError{Op: op, Record: r.String(), Err: ErrDuplicateRecord}
}

func notFound[T Entity[T]](op string, r T) error {
	return &RecordError{Op: op, Record: r.String(), Err: ErrRecordNotFound}
}
