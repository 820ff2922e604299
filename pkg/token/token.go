package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Config struct {
	// SecretKey signs both access and refresh tokens (HS256).
	SecretKey []byte

	Issuer   string
	Audience string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Manager struct {
	cfg    Config
	parser *jwt.Parser
}

func New(cfg Config) (*Manager, error) {
	if len(cfg.SecretKey) < 32 {
		return nil, ErrConfig{Msg: "SecretKey must be at least 32 bytes"}
	}
	if cfg.Issuer == "" {
		return nil, ErrConfig{Msg: "Issuer is required"}
	}
	if cfg.Audience == "" {
		return nil, ErrConfig{Msg: "Audience is required"}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}

	p := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	return &Manager{cfg: cfg, parser: p}, nil
}

func (m *Manager) IssueAccess(userID uuid.UUID, sessionID uuid.UUID, role string) (string, error) {
	return m.issue(TokenTypeAccess, userID, sessionID, role, m.cfg.AccessTTL)
}

func (m *Manager) IssueRefresh(userID uuid.UUID, sessionID uuid.UUID, role string) (string, error) {
	return m.issue(TokenTypeRefresh, userID, sessionID, role, m.cfg.RefreshTTL)
}

// AccessTTL exposes the configured access-token lifetime, used by
// handlers to report expires_in.
func (m *Manager) AccessTTL() time.Duration {
	return m.cfg.AccessTTL
}

func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	var wc wireClaims
	tok, err := m.parser.ParseWithClaims(tokenStr, &wc, func(t *jwt.Token) (any, error) {
		return m.cfg.SecretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}
	if !tok.Valid {
		return nil, ErrInvalidToken{Err: jwt.ErrTokenUnverifiable}
	}

	claims, err := wc.toClaims()
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	return claims, nil
}

func (m *Manager) issue(tt TokenType, userID, sessionID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	wc := wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			Subject:   userID.String(),
			ID:        randHex(16),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:      string(tt),
		UserID:    userID.String(),
		SessionID: sessionID.String(),
		Role:      role,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, wc)
	return tok.SignedString(m.cfg.SecretKey)
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
