package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleRef is a role entry inside the token claims. The identity issuer
// includes more fields; only the name participates in authorization.
type RoleRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// JWTClaims represents the JWT claims issued by the identity service
type JWTClaims struct {
	UserID string    `json:"userID"`
	Email  string    `json:"email"`
	Roles  []RoleRef `json:"roles"`

	jwt.RegisteredClaims
}

// PrimaryRole returns the name of the caller's first role, or "" when the
// token carries none.
func (c *JWTClaims) PrimaryRole() string {
	if len(c.Roles) == 0 {
		return ""
	}
	return c.Roles[0].Name
}

// AuthContext is the per-request identity bound by the auth middleware and
// consumed by the roles check and forwarding handlers. FilterQuery is the
// ownership scope applied by backend services for restricted roles.
type AuthContext struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	Access      string                 `json:"access"`
	FilterQuery map[string]interface{} `json:"filterQuery"`
}
