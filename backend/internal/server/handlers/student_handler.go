package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server/util"
)

// StudentHandler serves the student listing and creation endpoints.
type StudentHandler struct {
	Store *gradebook.Gradebook
}

// createStudentRequest mirrors the JSON input for POST /students.
// student_id is optional; when omitted the store auto-assigns the next ID.
type createStudentRequest struct {
	Name      string `json:"name"`
	StudentID *int   `json:"student_id,omitempty"`
}

// List handles GET /students
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"students": h.Store.Students(),
	})
}

// Create handles POST /students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate form-level input
	var reqBody createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(reqBody.Name)
	if name == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "Student name is required")
		return
	}

	// 2. Add through the store; ID checks belong to the store itself
	var (
		student gradebook.Student
		err     error
	)
	if reqBody.StudentID != nil {
		student, err = h.Store.AddStudentWithID(name, *reqBody.StudentID)
	} else {
		student, err = h.Store.AddStudent(name)
	}
	if err != nil {
		util.HandleStoreError(w, err)
		return
	}

	// 3. Respond with the created student
	util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"student": student,
	})
}
