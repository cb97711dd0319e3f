package service

import (
	"fmt"

	"github.com/tutorhub/sheets-bot/internal/models"
)

// ValidationError reports malformed input rejected before any I/O.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// DuplicateRecordError reports an add that would violate the uniqueness
// invariant. Existing carries the conflicting record with its original
// casing for display.
type DuplicateRecordError struct {
	Existing models.StudentRecord
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("student %s / %s already exists at row %d",
		e.Existing.ParentName, e.Existing.StudentName, e.Existing.RowIndex)
}

// RecordNotFoundError reports a lookup or delete whose target is absent.
// Key is the normalized lookup key that found no match.
type RecordNotFoundError struct {
	Sheet string
	Key   string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no record matching %q in %s", e.Key, e.Sheet)
}
