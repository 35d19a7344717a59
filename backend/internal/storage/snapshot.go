// ============================================================================
// backend/internal/storage/snapshot.go
// Whole-file JSON persistence for the gradebook state
// ============================================================================

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// StudentRecord is the persisted form of a student.
type StudentRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AssignmentRecord is the persisted form of an assignment.
type AssignmentRecord struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Weight float64 `json:"weight"`
	Type   string  `json:"type"`
}

// GradeRecord is the persisted form of a grade.
type GradeRecord struct {
	StudentID    int     `json:"student_id"`
	AssignmentID int     `json:"assignment_id"`
	Score        float64 `json:"score"`
}

// Snapshot is the root object of the data file. The three arrays are always
// present, even when empty.
type Snapshot struct {
	Students    []StudentRecord    `json:"students"`
	Assignments []AssignmentRecord `json:"assignments"`
	Grades      []GradeRecord      `json:"grades"`
}

// Empty returns a snapshot with all three arrays allocated, so a fresh data
// file serializes as empty arrays rather than nulls.
func Empty() Snapshot {
	return Snapshot{
		Students:    []StudentRecord{},
		Assignments: []AssignmentRecord{},
		Grades:      []GradeRecord{},
	}
}

// Exists reports whether a data file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and decodes the full snapshot at path.
func Load(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&snap)
	return snap, err
}

// Save writes the full snapshot to path as an atomic replace: the snapshot is
// written to a temporary file first and then renamed over the target, so an
// interrupted write never leaves a half-written data file behind.
func Save(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
