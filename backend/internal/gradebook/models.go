// ============================================================================
// backend/internal/gradebook/models.go
// Data models for the gradebook: students, assignments, grades
// ============================================================================

package gradebook

import (
	"fmt"
	"strings"
)

// ============================================================================
// Entity Models
// ============================================================================

// Student represents a student with a unique positive ID
type Student struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s Student) String() string {
	return fmt.Sprintf("Student(%d: %s)", s.ID, s.Name)
}

// Assignment represents a graded assignment. The type is a pure
// classification label; all three types are computed identically.
type Assignment struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Weight float64 `json:"weight"`
	Type   string  `json:"type"` // exam, quiz, homework
}

func (a Assignment) String() string {
	return fmt.Sprintf("Assignment(%d: %s, weight=%g)", a.ID, a.Title, a.Weight)
}

// Grade records a score for one (student, assignment) pair.
// At most one grade exists per pair; re-adding replaces the prior one.
type Grade struct {
	StudentID    int     `json:"student_id"`
	AssignmentID int     `json:"assignment_id"`
	Score        float64 `json:"score"` // 0..100
}

// ============================================================================
// Assignment Types
// ============================================================================

const (
	TypeExam     = "exam"
	TypeQuiz     = "quiz"
	TypeHomework = "homework"
)

// NormalizeAssignmentType lower-cases the given type and maps it to one of
// the three closed tags. Unrecognized values default to exam.
func NormalizeAssignmentType(typ string) string {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case TypeQuiz:
		return TypeQuiz
	case TypeHomework:
		return TypeHomework
	default:
		return TypeExam
	}
}

// ============================================================================
// GPA Banding
// ============================================================================

// PercentToGPA converts a percentage to the 4.0 scale. Band lower bounds are
// inclusive: exactly 90.0 yields 4.0, 89.999 yields 3.0.
func PercentToGPA(percent float64) float64 {
	switch {
	case percent >= 90:
		return 4.0
	case percent >= 80:
		return 3.0
	case percent >= 70:
		return 2.0
	case percent >= 60:
		return 1.0
	default:
		return 0.0
	}
}
