package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server/util"
)

// AssignmentHandler serves the assignment listing and creation endpoints.
type AssignmentHandler struct {
	Store *gradebook.Gradebook
}

// createAssignmentRequest mirrors the JSON input for POST /assignments.
// Weight defaults to 1.0 and type to exam when omitted.
type createAssignmentRequest struct {
	Title  string   `json:"title"`
	Weight *float64 `json:"weight,omitempty"`
	Type   string   `json:"type,omitempty"`
}

// List handles GET /assignments
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"assignments": h.Store.Assignments(),
	})
}

// Create handles POST /assignments
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate form-level input
	var reqBody createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := strings.TrimSpace(reqBody.Title)
	if title == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "Assignment title is required")
		return
	}

	weight := 1.0
	if reqBody.Weight != nil {
		weight = *reqBody.Weight
	}

	// 2. Add through the store; type normalization happens there
	assignment, err := h.Store.AddAssignment(title, weight, reqBody.Type)
	if err != nil {
		util.HandleStoreError(w, err)
		return
	}

	// 3. Respond with the created assignment
	util.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"assignment": assignment,
	})
}
