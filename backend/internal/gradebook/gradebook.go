// ============================================================================
// backend/internal/gradebook/gradebook.go
// In-memory gradebook store backed by a whole-file JSON snapshot
// ============================================================================

package gradebook

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"sync"

	"github.com/montanaflynn/stats"

	"gradebook_manager/backend/internal/storage"
)

// undefinedPlaceholder is rendered in CSV summary rows when a student has no
// defined average or GPA.
const undefinedPlaceholder = "N/A"

// Gradebook manages students, assignments, and grades in memory and rewrites
// the full backing file after every successful mutation. A single mutex
// serializes operations so interleaved requests cannot lose an update to the
// read-modify-persist cycle.
type Gradebook struct {
	mu          sync.Mutex
	path        string
	students    map[int]Student
	assignments map[int]Assignment
	grades      []Grade // insertion order drives CSV row ordering
}

// New opens the gradebook at path. A missing data file is initialized to the
// empty structure and persisted before loading. Grades are validated on load:
// a corrupt score outside [0, 100] fails with InvalidGradeError, the same way
// a runtime insert would.
func New(path string) (*Gradebook, error) {
	if !storage.Exists(path) {
		if err := storage.Save(path, storage.Empty()); err != nil {
			return nil, err
		}
	}

	snap, err := storage.Load(path)
	if err != nil {
		return nil, err
	}

	g := &Gradebook{
		path:        path,
		students:    make(map[int]Student, len(snap.Students)),
		assignments: make(map[int]Assignment, len(snap.Assignments)),
		grades:      make([]Grade, 0, len(snap.Grades)),
	}

	for _, rec := range snap.Students {
		g.students[rec.ID] = Student{ID: rec.ID, Name: rec.Name}
	}
	for _, rec := range snap.Assignments {
		g.assignments[rec.ID] = Assignment{
			ID:     rec.ID,
			Title:  rec.Title,
			Weight: rec.Weight,
			Type:   NormalizeAssignmentType(rec.Type),
		}
	}
	for _, rec := range snap.Grades {
		if rec.Score < 0 || rec.Score > 100 {
			return nil, &InvalidGradeError{Score: rec.Score}
		}
		g.grades = append(g.grades, Grade{
			StudentID:    rec.StudentID,
			AssignmentID: rec.AssignmentID,
			Score:        rec.Score,
		})
	}

	return g, nil
}

// persist rewrites the backing file with the entire current state. Callers
// must hold the mutex. Students and assignments are written sorted by ID so
// the file is stable across rewrites.
func (g *Gradebook) persist() error {
	snap := storage.Empty()

	for _, s := range g.sortedStudents() {
		snap.Students = append(snap.Students, storage.StudentRecord{ID: s.ID, Name: s.Name})
	}
	for _, a := range g.sortedAssignments() {
		snap.Assignments = append(snap.Assignments, storage.AssignmentRecord{
			ID:     a.ID,
			Title:  a.Title,
			Weight: a.Weight,
			Type:   a.Type,
		})
	}
	for _, gr := range g.grades {
		snap.Grades = append(snap.Grades, storage.GradeRecord{
			StudentID:    gr.StudentID,
			AssignmentID: gr.AssignmentID,
			Score:        gr.Score,
		})
	}

	return storage.Save(g.path, snap)
}

func (g *Gradebook) sortedStudents() []Student {
	out := make([]Student, 0, len(g.students))
	for _, s := range g.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (g *Gradebook) sortedAssignments() []Assignment {
	out := make([]Assignment, 0, len(g.assignments))
	for _, a := range g.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// nextID returns max(existing IDs) + 1, or 1 when the map is empty.
func nextID[T any](m map[int]T) int {
	next := 1
	for id := range m {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// ============================================================================
// Mutations
// ============================================================================

// AddStudent adds a student with an auto-assigned ID.
func (g *Gradebook) AddStudent(name string) (Student, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addStudent(name, nextID(g.students))
}

// AddStudentWithID adds a student under a caller-supplied ID. The ID must be
// positive and not already in use.
func (g *Gradebook) AddStudentWithID(name string, id int) (Student, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id <= 0 {
		return Student{}, &ValidationError{Field: "student ID", Message: "must be a positive number"}
	}
	if _, exists := g.students[id]; exists {
		return Student{}, &DuplicateIDError{ID: id}
	}
	return g.addStudent(name, id)
}

func (g *Gradebook) addStudent(name string, id int) (Student, error) {
	student := Student{ID: id, Name: name}
	g.students[id] = student
	if err := g.persist(); err != nil {
		return Student{}, err
	}
	return student, nil
}

// AddAssignment adds an assignment with an auto-assigned ID. The type is
// normalized to one of the three closed tags; unrecognized values default to
// exam.
func (g *Gradebook) AddAssignment(title string, weight float64, typ string) (Assignment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if weight < 0 {
		return Assignment{}, &ValidationError{Field: "weight", Message: "must not be negative"}
	}

	assignment := Assignment{
		ID:     nextID(g.assignments),
		Title:  title,
		Weight: weight,
		Type:   NormalizeAssignmentType(typ),
	}
	g.assignments[assignment.ID] = assignment
	if err := g.persist(); err != nil {
		return Assignment{}, err
	}
	return assignment, nil
}

// AddGrade records a score for a (student, assignment) pair, replacing any
// existing grade for the same pair. Both references must exist and the score
// must lie in [0, 100]; validation happens before any in-memory change.
func (g *Gradebook) AddGrade(studentID, assignmentID int, score float64) (Grade, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.students[studentID]; !ok {
		return Grade{}, &NotFoundError{Kind: "student", ID: studentID}
	}
	if _, ok := g.assignments[assignmentID]; !ok {
		return Grade{}, &NotFoundError{Kind: "assignment", ID: assignmentID}
	}
	if score < 0 || score > 100 {
		return Grade{}, &InvalidGradeError{Score: score}
	}

	// Upsert: drop any prior grade for the pair, then append.
	kept := g.grades[:0]
	for _, gr := range g.grades {
		if gr.StudentID != studentID || gr.AssignmentID != assignmentID {
			kept = append(kept, gr)
		}
	}
	g.grades = kept

	grade := Grade{StudentID: studentID, AssignmentID: assignmentID, Score: score}
	g.grades = append(g.grades, grade)
	if err := g.persist(); err != nil {
		return Grade{}, err
	}
	return grade, nil
}

// ============================================================================
// Read Accessors
// ============================================================================

// Students returns all students sorted by ID.
func (g *Gradebook) Students() []Student {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortedStudents()
}

// Assignments returns all assignments sorted by ID.
func (g *Gradebook) Assignments() []Assignment {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sortedAssignments()
}

// Grades returns all grades in insertion order.
func (g *Gradebook) Grades() []Grade {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Grade, len(g.grades))
	copy(out, g.grades)
	return out
}

// ============================================================================
// Derived Computations
// ============================================================================

// WeightedAverage computes sum(score*weight)/sum(weight) over the student's
// qualifying grades. A grade qualifies only if its assignment still exists.
// The second return is false when the student does not exist, has no
// qualifying grades, or the total weight is zero.
func (g *Gradebook) WeightedAverage(studentID int) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.weightedAverage(studentID)
}

func (g *Gradebook) weightedAverage(studentID int) (float64, bool) {
	if _, ok := g.students[studentID]; !ok {
		return 0, false
	}

	var totalWeighted, totalWeight float64
	qualifying := false
	for _, gr := range g.grades {
		if gr.StudentID != studentID {
			continue
		}
		assignment, ok := g.assignments[gr.AssignmentID]
		if !ok {
			continue
		}
		totalWeighted += gr.Score * assignment.Weight
		totalWeight += assignment.Weight
		qualifying = true
	}

	if !qualifying || totalWeight == 0 {
		return 0, false
	}
	return totalWeighted / totalWeight, true
}

// GPA maps the student's weighted average through the fixed percent-to-4.0
// banding. Undefined under the same conditions as WeightedAverage.
func (g *Gradebook) GPA(studentID int) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gpa(studentID)
}

func (g *Gradebook) gpa(studentID int) (float64, bool) {
	percent, ok := g.weightedAverage(studentID)
	if !ok {
		return 0, false
	}
	return PercentToGPA(percent), true
}

// ClassAverage computes the arithmetic mean of each student's weighted
// average, counting only students with a defined average. Undefined when
// there are no students or no student has a defined average.
func (g *Gradebook) ClassAverage() (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var averages []float64
	for id := range g.students {
		if avg, ok := g.weightedAverage(id); ok {
			averages = append(averages, avg)
		}
	}

	mean, err := stats.Mean(averages)
	if err != nil {
		return 0, false
	}
	return mean, true
}

// ============================================================================
// CSV Export
// ============================================================================

// ExportStudentCSV renders a per-student report: a header row with the
// student's ID and name, the qualifying grades in store order, and summary
// rows for the weighted average and GPA (rendered as N/A when undefined).
func (g *Gradebook) ExportStudentCSV(studentID int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	student, ok := g.students[studentID]
	if !ok {
		return "", &NotFoundError{Kind: "student", ID: studentID}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Student ID", "Student Name", strconv.Itoa(student.ID), student.Name})
	w.Write([]string{})
	w.Write([]string{"Assignment ID", "Title", "Type", "Weight", "Score"})

	for _, gr := range g.grades {
		if gr.StudentID != studentID {
			continue
		}
		assignment, ok := g.assignments[gr.AssignmentID]
		if !ok {
			continue
		}
		w.Write([]string{
			strconv.Itoa(assignment.ID),
			assignment.Title,
			assignment.Type,
			formatFloat(assignment.Weight),
			formatFloat(gr.Score),
		})
	}

	w.Write([]string{})

	avgText := undefinedPlaceholder
	if avg, ok := g.weightedAverage(studentID); ok {
		avgText = formatFloat(avg)
	}
	gpaText := undefinedPlaceholder
	if gpa, ok := g.gpa(studentID); ok {
		gpaText = strconv.FormatFloat(gpa, 'f', 1, 64)
	}
	w.Write([]string{"Final Weighted Average", avgText})
	w.Write([]string{"GPA", gpaText})

	w.Flush()
	return buf.String(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
