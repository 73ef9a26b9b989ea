package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/erp/storefront/internal/domain/shared"
)

// SessionToken is the per-slug session record written by the external login
// flow. It is treated as opaque: the gateway checks presence, never
// validity. Validity is only discovered reactively, when an upstream call
// returns an authorization failure.
type SessionToken struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	Email       string `json:"email,omitempty"`
	Nombre      string `json:"nombre,omitempty"`
}

// Validate checks that the token carries the two fields every downstream
// consumer needs: a user identifier and an access credential
func (t SessionToken) Validate() error {
	if t.UserID == "" || t.AccessToken == "" {
		return shared.ErrSessionInvalid
	}
	return nil
}

// TokenInfo is a best-effort, unverified peek into the access credential.
// Used for diagnostics only; signature verification belongs to the upstream
// API, not this layer.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect decodes the access credential without verifying its signature.
// A credential that is not a JWT yields an error, which callers treat as
// "no diagnostics available", not as an invalid session.
func (t SessionToken) Inspect() (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(t.AccessToken, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
