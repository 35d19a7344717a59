// ============================================================================
// backend/internal/auth/roles.go
// Role tokens for the teacher/viewer permission split
// ============================================================================

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Caller-visible roles. Teachers can read and write, viewers are read-only.
const (
	RoleTeacher = "teacher"
	RoleViewer  = "viewer"
)

// RoleClaims carries the role inside a signed token
type RoleClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsValidRole reports whether the given role can be issued
func IsValidRole(role string) bool {
	return role == RoleTeacher || role == RoleViewer
}

// CanEdit reports whether the given role may call mutation endpoints
func CanEdit(role string) bool {
	return role == RoleTeacher
}

// IssueToken creates a signed HS256 token carrying the given role
func IssueToken(role, secret string, ttl time.Duration) (string, time.Time, error) {
	if !IsValidRole(role) {
		return "", time.Time{}, fmt.Errorf("unknown role: %s", role)
	}

	expiresAt := time.Now().Add(ttl)
	claims := RoleClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gradebook-manager",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))

	return tokenString, expiresAt, err
}

// ParseToken validates the token signature and returns the role it carries
func ParseToken(tokenString, secret string) (string, error) {
	claims := &RoleClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || !IsValidRole(claims.Role) {
		return "", fmt.Errorf("invalid role token")
	}

	return claims.Role, nil
}
