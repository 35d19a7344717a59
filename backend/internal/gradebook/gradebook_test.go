package gradebook

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook_manager/backend/internal/storage"
)

func newTestBook(t *testing.T) *Gradebook {
	t.Helper()
	g, err := New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return g
}

func TestAutoIDMonotonicity(t *testing.T) {
	g := newTestBook(t)

	for i, name := range []string{"Alice", "Bob", "Carol"} {
		student, err := g.AddStudent(name)
		require.NoError(t, err)
		assert.Equal(t, i+1, student.ID)
	}

	// After an explicit higher ID, the next auto ID continues from the max.
	_, err := g.AddStudentWithID("Dave", 10)
	require.NoError(t, err)

	student, err := g.AddStudent("Eve")
	require.NoError(t, err)
	assert.Equal(t, 11, student.ID)
}

func TestDuplicateIDRejected(t *testing.T) {
	g := newTestBook(t)

	_, err := g.AddStudentWithID("Alice", 5)
	require.NoError(t, err)

	_, err = g.AddStudentWithID("Bob", 5)
	var dupErr *DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, 5, dupErr.ID)

	// The failed add must leave the store unchanged.
	assert.Len(t, g.Students(), 1)
	assert.Equal(t, "Alice", g.Students()[0].Name)
}

func TestNonPositiveIDRejected(t *testing.T) {
	g := newTestBook(t)

	for _, id := range []int{0, -3} {
		_, err := g.AddStudentWithID("Alice", id)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	}
	assert.Empty(t, g.Students())
}

func TestScoreBounds(t *testing.T) {
	g := newTestBook(t)

	student, err := g.AddStudent("Alice")
	require.NoError(t, err)
	assignment, err := g.AddAssignment("Midterm", 1.0, "exam")
	require.NoError(t, err)

	for _, score := range []float64{-1, 101} {
		_, err := g.AddGrade(student.ID, assignment.ID, score)
		var invErr *InvalidGradeError
		assert.ErrorAs(t, err, &invErr)
	}
	assert.Empty(t, g.Grades())

	// The boundaries themselves are valid.
	_, err = g.AddGrade(student.ID, assignment.ID, 0)
	assert.NoError(t, err)
	_, err = g.AddGrade(student.ID, assignment.ID, 100)
	assert.NoError(t, err)
}

func TestGradeReferencesMustExist(t *testing.T) {
	g := newTestBook(t)

	student, err := g.AddStudent("Alice")
	require.NoError(t, err)
	assignment, err := g.AddAssignment("Midterm", 1.0, "exam")
	require.NoError(t, err)

	var nfErr *NotFoundError
	_, err = g.AddGrade(999, assignment.ID, 50)
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "student", nfErr.Kind)

	_, err = g.AddGrade(student.ID, 999, 50)
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "assignment", nfErr.Kind)
}

func TestGradeUpsert(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudent("Alice")
	assignment, _ := g.AddAssignment("Midterm", 1.0, "exam")

	_, err := g.AddGrade(student.ID, assignment.ID, 70)
	require.NoError(t, err)
	_, err = g.AddGrade(student.ID, assignment.ID, 95)
	require.NoError(t, err)

	grades := g.Grades()
	require.Len(t, grades, 1)
	assert.Equal(t, 95.0, grades[0].Score)
}

func TestWeightedAverageAndGPA(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudent("Alice")
	a1, _ := g.AddAssignment("Midterm", 1.0, "exam")
	a2, _ := g.AddAssignment("Final", 1.0, "exam")

	g.AddGrade(student.ID, a1.ID, 80)
	g.AddGrade(student.ID, a2.ID, 100)

	avg, ok := g.WeightedAverage(student.ID)
	require.True(t, ok)
	assert.Equal(t, 90.0, avg)

	gpa, ok := g.GPA(student.ID)
	require.True(t, ok)
	assert.Equal(t, 4.0, gpa)
}

func TestWeightsAffectAverage(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudent("Alice")
	exam, _ := g.AddAssignment("Midterm", 3.0, "exam")
	quiz, _ := g.AddAssignment("Quiz", 1.0, "quiz")

	g.AddGrade(student.ID, exam.ID, 90)
	g.AddGrade(student.ID, quiz.ID, 50)

	avg, ok := g.WeightedAverage(student.ID)
	require.True(t, ok)
	assert.InDelta(t, 80.0, avg, 1e-9) // (90*3 + 50*1) / 4
}

func TestNoDataCases(t *testing.T) {
	g := newTestBook(t)

	// No students at all: class average is undefined.
	_, ok := g.ClassAverage()
	assert.False(t, ok)

	// A student with zero grades has no average and no GPA.
	student, _ := g.AddStudent("Alice")
	_, ok = g.WeightedAverage(student.ID)
	assert.False(t, ok)
	_, ok = g.GPA(student.ID)
	assert.False(t, ok)

	// An unknown student likewise has no value.
	_, ok = g.WeightedAverage(999)
	assert.False(t, ok)
}

func TestZeroTotalWeightIsUndefined(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudent("Alice")
	assignment, _ := g.AddAssignment("Ungraded practice", 0, "homework")
	_, err := g.AddGrade(student.ID, assignment.ID, 90)
	require.NoError(t, err)

	// Sum of weights is zero: no value rather than a division by zero.
	_, ok := g.WeightedAverage(student.ID)
	assert.False(t, ok)
}

func TestGPABanding(t *testing.T) {
	cases := []struct {
		percent float64
		gpa     float64
	}{
		{100, 4.0},
		{90.0, 4.0},
		{89.999, 3.0},
		{80.0, 3.0},
		{79.999, 2.0},
		{70.0, 2.0},
		{69.999, 1.0},
		{60.0, 1.0},
		{59.999, 0.0},
		{0, 0.0},
	}

	for _, c := range cases {
		assert.Equal(t, c.gpa, PercentToGPA(c.percent), "percent %v", c.percent)
	}
}

func TestClassAverageSkipsGradelessStudents(t *testing.T) {
	g := newTestBook(t)

	graded, _ := g.AddStudent("Alice")
	g.AddStudent("Bob") // never graded

	assignment, _ := g.AddAssignment("Midterm", 1.0, "exam")
	g.AddGrade(graded.ID, assignment.ID, 90)

	// Bob is excluded from both sum and count, not treated as zero.
	avg, ok := g.ClassAverage()
	require.True(t, ok)
	assert.Equal(t, 90.0, avg)
}

func TestAssignmentTypeNormalization(t *testing.T) {
	g := newTestBook(t)

	cases := map[string]string{
		"QUIZ":     TypeQuiz,
		"Homework": TypeHomework,
		"exam":     TypeExam,
		"project":  TypeExam, // unrecognized values default to exam
		"":         TypeExam,
	}

	for input, want := range cases {
		assignment, err := g.AddAssignment("A", 1.0, input)
		require.NoError(t, err)
		assert.Equal(t, want, assignment.Type, "input %q", input)
	}
}

func TestNegativeWeightRejected(t *testing.T) {
	g := newTestBook(t)

	_, err := g.AddAssignment("Broken", -1.0, "exam")
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Empty(t, g.Assignments())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	g, err := New(path)
	require.NoError(t, err)

	g.AddStudentWithID("Alice", 7)
	g.AddStudent("Bob")
	g.AddAssignment("Midterm", 2.0, "exam")
	g.AddAssignment("Quiz 1", 1.0, "quiz")
	g.AddGrade(7, 1, 85.5)
	g.AddGrade(8, 2, 60)

	// Reload from the same file and compare the full state.
	reloaded, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, g.Students(), reloaded.Students())
	assert.Equal(t, g.Assignments(), reloaded.Assignments())
	assert.Equal(t, g.Grades(), reloaded.Grades())
}

func TestLoadRejectsCorruptScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	snap := storage.Empty()
	snap.Students = append(snap.Students, storage.StudentRecord{ID: 1, Name: "Alice"})
	snap.Assignments = append(snap.Assignments, storage.AssignmentRecord{ID: 1, Title: "Midterm", Weight: 1, Type: "exam"})
	snap.Grades = append(snap.Grades, storage.GradeRecord{StudentID: 1, AssignmentID: 1, Score: 150})
	require.NoError(t, storage.Save(path, snap))

	_, err := New(path)
	var invErr *InvalidGradeError
	assert.ErrorAs(t, err, &invErr)
}

func TestDanglingAssignmentDoesNotQualify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	// A grade whose assignment no longer exists is kept in the store but
	// excluded from every computation.
	snap := storage.Empty()
	snap.Students = append(snap.Students, storage.StudentRecord{ID: 1, Name: "Alice"})
	snap.Assignments = append(snap.Assignments, storage.AssignmentRecord{ID: 1, Title: "Midterm", Weight: 1, Type: "exam"})
	snap.Grades = append(snap.Grades,
		storage.GradeRecord{StudentID: 1, AssignmentID: 1, Score: 80},
		storage.GradeRecord{StudentID: 1, AssignmentID: 99, Score: 10},
	)
	require.NoError(t, storage.Save(path, snap))

	g, err := New(path)
	require.NoError(t, err)

	avg, ok := g.WeightedAverage(1)
	require.True(t, ok)
	assert.Equal(t, 80.0, avg)

	csvText, err := g.ExportStudentCSV(1)
	require.NoError(t, err)
	assert.NotContains(t, csvText, "99")
}

func TestExportStudentCSV(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudentWithID("Alice", 3)
	exam, _ := g.AddAssignment("Midterm", 2.0, "exam")
	quiz, _ := g.AddAssignment("Quiz 1", 1.0, "quiz")
	g.AddGrade(student.ID, exam.ID, 90)
	g.AddGrade(student.ID, quiz.ID, 60)

	csvText, err := g.ExportStudentCSV(student.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Student ID,Student Name,3,Alice", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Assignment ID,Title,Type,Weight,Score", lines[2])
	assert.Equal(t, "1,Midterm,exam,2,90", lines[3])
	assert.Equal(t, "2,Quiz 1,quiz,1,60", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "Final Weighted Average,80", lines[6])
	assert.Equal(t, "GPA,3.0", lines[7])
}

func TestExportStudentCSVWithoutGrades(t *testing.T) {
	g := newTestBook(t)

	student, _ := g.AddStudent("Alice")

	csvText, err := g.ExportStudentCSV(student.ID)
	require.NoError(t, err)

	// Header and summary rows are still emitted, with the placeholder text.
	assert.Contains(t, csvText, "Assignment ID,Title,Type,Weight,Score")
	assert.Contains(t, csvText, "Final Weighted Average,N/A")
	assert.Contains(t, csvText, "GPA,N/A")
}

func TestExportStudentCSVNotFound(t *testing.T) {
	g := newTestBook(t)

	_, err := g.ExportStudentCSV(42)
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
