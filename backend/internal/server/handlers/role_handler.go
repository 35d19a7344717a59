package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gradebook_manager/backend/internal/auth"
	"gradebook_manager/backend/internal/server/util"
	"gradebook_manager/backend/internal/shared"
)

// RoleHandler issues role tokens for the teacher/viewer permission split.
type RoleHandler struct {
	Security shared.SecurityConfig
}

// Switch handles POST /role/{role}
// Issues a signed token carrying the requested role. Requests without a
// token default to the teacher role, so this endpoint only matters for
// switching to viewer and back.
func (h *RoleHandler) Switch(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	if !auth.IsValidRole(role) {
		util.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid role: %s", role))
		return
	}

	token, expiresAt, err := auth.IssueToken(role, h.Security.JWTSecret, h.Security.TokenTTL)
	if err != nil {
		util.WriteJSONError(w, http.StatusInternalServerError, "Failed to issue role token")
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"role":       role,
		"token":      token,
		"expires_at": expiresAt,
	})
}
