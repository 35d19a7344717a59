package util

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"gradebook_manager/backend/internal/gradebook"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON is a helper to write JSON responses
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// If the payload already carries a "success" key, pass it through
	// unchanged; otherwise wrap it in the standard envelope.
	var response interface{}
	if responseMap, ok := payload.(map[string]interface{}); ok && responseMap["success"] != nil {
		response = payload
	} else {
		response = JSONResponse{Success: true, Data: payload}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	log.Printf("HTTP Error %d: %s", status, message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResponse := JSONError{
		Success: false,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleStoreError translates gradebook domain errors to HTTP responses.
// This is the single place where error kinds map to status codes.
func HandleStoreError(w http.ResponseWriter, err error) {
	var (
		duplicateErr  *gradebook.DuplicateIDError
		invalidErr    *gradebook.InvalidGradeError
		notFoundErr   *gradebook.NotFoundError
		validationErr *gradebook.ValidationError
	)

	switch {
	case errors.As(err, &duplicateErr):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.As(err, &invalidErr):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &validationErr):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	default:
		// A failed data-file write surfaces here; the in-memory change has
		// already been applied, so report it loudly.
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

// ExtractToken extracts the token from the Authorization header (Bearer <token>)
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	// Expect header: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// roleContextKey is the context key under which the request role is stored
type roleContextKey struct{}

// WithRole returns a context carrying the given role
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleContextKey{}, role)
}

// RoleFromContext returns the role stored in the context, if any
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleContextKey{}).(string)
	return role, ok
}
