package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testManager(t *testing.T) *Manager {
	t.Helper()

	m, err := New(Config{
		SecretKey:  []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "nutrito",
		Audience:   "nutrito-app",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"short secret", Config{SecretKey: []byte("tooshort"), Issuer: "i", Audience: "a"}},
		{"missing issuer", Config{SecretKey: []byte("0123456789abcdef0123456789abcdef"), Audience: "a"}},
		{"missing audience", Config{SecretKey: []byte("0123456789abcdef0123456789abcdef"), Issuer: "i"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() expected error, got nil")
			}
		})
	}
}

func TestIssueAndVerifyAccess(t *testing.T) {
	m := testManager(t)

	uid := uuid.New()
	sid := uuid.New()

	tok, err := m.IssueAccess(uid, sid, "paciente")
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Errorf("IssueAccess() not a compact JWT: %s", tok)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.Type != TokenTypeAccess {
		t.Errorf("Type = %s, want %s", claims.Type, TokenTypeAccess)
	}
	if claims.UserID != uid {
		t.Errorf("UserID = %s, want %s", claims.UserID, uid)
	}
	if claims.SessionID != sid {
		t.Errorf("SessionID = %s, want %s", claims.SessionID, sid)
	}
	if claims.Role != "paciente" {
		t.Errorf("Role = %s, want paciente", claims.Role)
	}
	if claims.IsExpired() {
		t.Error("IsExpired() = true for freshly issued token")
	}
}

func TestIssueRefreshType(t *testing.T) {
	m := testManager(t)

	tok, err := m.IssueRefresh(uuid.New(), uuid.New(), "nutricionista")
	if err != nil {
		t.Fatalf("IssueRefresh() error = %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Type != TokenTypeRefresh {
		t.Errorf("Type = %s, want %s", claims.Type, TokenTypeRefresh)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	m := testManager(t)

	tok, _ := m.IssueAccess(uuid.New(), uuid.New(), "paciente")
	tampered := tok[:len(tok)-2] + "xx"

	if _, err := m.Verify(tampered); err == nil {
		t.Error("Verify() accepted a tampered token")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	m := testManager(t)

	other, err := New(Config{
		SecretKey: []byte("ffffffffffffffffffffffffffffffff"),
		Issuer:    "nutrito",
		Audience:  "nutrito-app",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tok, _ := other.IssueAccess(uuid.New(), uuid.New(), "paciente")
	if _, err := m.Verify(tok); err == nil {
		t.Error("Verify() accepted a token signed with a different key")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := testManager(t)

	tok, err := m.issue(TokenTypeAccess, uuid.New(), uuid.New(), "paciente", -time.Minute)
	if err != nil {
		t.Fatalf("issue() error = %v", err)
	}

	if _, err := m.Verify(tok); err == nil {
		t.Error("Verify() accepted an expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t)

	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted garbage", tok)
		}
	}
}
