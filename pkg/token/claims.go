package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// wireClaims is the JWT payload as serialized on the wire.
type wireClaims struct {
	jwt.RegisteredClaims

	Type      string `json:"typ"`
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	Role      string `json:"rol"`
}

func (w *wireClaims) toClaims() (*Claims, error) {
	uid, err := uuid.Parse(w.UserID)
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(w.SessionID)
	if err != nil {
		return nil, err
	}

	out := &Claims{
		Type:      TokenType(w.Type),
		UserID:    uid,
		SessionID: sid,
		Role:      w.Role,
		Issuer:    w.Issuer,
		TokenID:   w.ID,
		Subject:   w.Subject,
	}
	if len(w.Audience) > 0 {
		out.Audience = w.Audience[0]
	}
	if w.IssuedAt != nil {
		out.IssuedAt = w.IssuedAt.Time
	}
	if w.NotBefore != nil {
		out.NotBefore = w.NotBefore.Time
	}
	if w.ExpiresAt != nil {
		out.ExpiresAt = w.ExpiresAt.Time
	}

	return out, nil
}

// Claims is the app-facing token payload.
type Claims struct {
	Type TokenType

	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      string

	Issuer   string
	Audience string

	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time
	TokenID   string // jti
	Subject   string
}

// GetUserID implements authorize.ClaimsProvider and reqctx.AuthClaims interface.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// GetSessionID implements reqctx.AuthClaims interface.
func (c *Claims) GetSessionID() uuid.UUID {
	return c.SessionID
}

// GetRole implements reqctx.AuthClaims interface.
func (c *Claims) GetRole() string {
	return c.Role
}

// GetTokenType implements reqctx.AuthClaims interface.
func (c *Claims) GetTokenType() string {
	return string(c.Type)
}

// IsExpired implements reqctx.AuthClaims interface.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
