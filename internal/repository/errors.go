package repository

import "fmt"

// AuthenticationError reports invalid or unusable Google credentials.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("sheets authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ResourceNotFoundError reports a spreadsheet that does not exist or is not
// shared with the service account.
type ResourceNotFoundError struct {
	SheetID string
	Err     error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("spreadsheet %s not found or inaccessible: %v", e.SheetID, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// WriteError reports a failed remote operation against a worksheet. Op names
// the operation for the caller ("append", "delete", "update", "create").
type WriteError struct {
	Op        string
	SheetID   string
	Worksheet string
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s on %s/%s failed: %v", e.Op, e.SheetID, e.Worksheet, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
