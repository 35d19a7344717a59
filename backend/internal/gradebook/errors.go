package gradebook

import "fmt"

// DuplicateIDError reports a caller-supplied student ID that is already in
// use. Recoverable: choose a different ID or omit it.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("student ID %d already exists", e.ID)
}

// InvalidGradeError reports a score outside the [0, 100] range.
type InvalidGradeError struct {
	Score float64
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("score must be between 0 and 100, got %g", e.Score)
}

// NotFoundError reports a referenced student or assignment that does not
// exist in the store.
type NotFoundError struct {
	Kind string // "student" or "assignment"
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ValidationError reports malformed input, such as a non-positive ID or a
// negative weight.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
