package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server/util"
)

// ReportHandler serves the derived computations: the per-student summary
// table and the CSV export.
type ReportHandler struct {
	Store *gradebook.Gradebook
}

// studentSummary is one row of the summary view. Average and GPA are null
// when the student has no qualifying grades.
type studentSummary struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Average *float64 `json:"average"`
	GPA     *float64 `json:"gpa"`
}

// Summary handles GET /summary
// Reports every student's weighted average and GPA plus the class average.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	students := h.Store.Students()

	summaries := make([]studentSummary, 0, len(students))
	for _, s := range students {
		row := studentSummary{ID: s.ID, Name: s.Name}
		if avg, ok := h.Store.WeightedAverage(s.ID); ok {
			row.Average = &avg
		}
		if gpa, ok := h.Store.GPA(s.ID); ok {
			row.GPA = &gpa
		}
		summaries = append(summaries, row)
	}

	var classAverage *float64
	if avg, ok := h.Store.ClassAverage(); ok {
		classAverage = &avg
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"students":      summaries,
		"class_average": classAverage,
	})
}

// ExportCSV handles GET /export/{student_id}
// Returns the per-student report as a downloadable CSV attachment.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.Atoi(chi.URLParam(r, "student_id"))
	if err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "student_id must be a valid number")
		return
	}

	csvText, err := h.Store.ExportStudentCSV(studentID)
	if err != nil {
		util.HandleStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=student_%d_grades.csv", studentID))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csvText))
}
