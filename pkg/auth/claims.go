package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	DepartmentID int
	FullName     string
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to clients. The same
// bearer string doubles as the credential forwarded to the procurement API,
// so everything the order form needs from the session rides on the claims.
type AccessTokenClaims struct {
	UserID       uuid.UUID `json:"user_id"`
	DepartmentID int       `json:"department_id"`
	FullName     string    `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// Session is the explicit per-request session handed to controllers and the
// gateway instead of any ambient token storage.
type Session struct {
	UserID       uuid.UUID
	DepartmentID int
	FullName     string
	Token        string
}
