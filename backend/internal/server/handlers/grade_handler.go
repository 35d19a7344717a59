package handlers

import (
	"encoding/json"
	"net/http"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server/util"
)

// GradeHandler serves the grade listing and recording endpoints.
type GradeHandler struct {
	Store *gradebook.Gradebook
}

// createGradeRequest mirrors the JSON input for POST /grades. All three
// fields are required; pointers distinguish a missing field from a zero,
// since a score of 0 is valid.
type createGradeRequest struct {
	StudentID    *int     `json:"student_id"`
	AssignmentID *int     `json:"assignment_id"`
	Score        *float64 `json:"score"`
}

// List handles GET /grades
func (h *GradeHandler) List(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"grades":  h.Store.Grades(),
	})
}

// Create handles POST /grades
func (h *GradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate form-level input
	var reqBody createGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if reqBody.StudentID == nil || reqBody.AssignmentID == nil || reqBody.Score == nil {
		util.WriteJSONError(w, http.StatusBadRequest, "student_id, assignment_id, and score are required")
		return
	}

	// 2. Record through the store (upsert by student/assignment pair)
	grade, err := h.Store.AddGrade(*reqBody.StudentID, *reqBody.AssignmentID, *reqBody.Score)
	if err != nil {
		util.HandleStoreError(w, err)
		return
	}

	// 3. Respond with the recorded grade
	util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"grade":   grade,
	})
}
