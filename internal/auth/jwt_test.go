package auth

import (
	"testing"
	"time"

	"loadboard/internal/config"
)

func testManager() *Manager {
	return NewManager(config.AuthConfig{
		JWTSecret: "test-secret",
		JWTIssuer: "loadboard",
		TokenTTL:  15 * time.Minute,
	})
}

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m := testManager()
	now := time.Unix(1700000000, 0).UTC()

	token, exp, err := m.Issue(now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !exp.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", exp)
	}

	claims, err := m.Verify(token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token, got %q", claims.TokenType)
	}
	if claims.Issuer != "loadboard" {
		t.Fatalf("expected issuer carried, got %q", claims.Issuer)
	}
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := testManager()
	now := time.Unix(1700000000, 0).UTC()

	token, _, err := m.Issue(now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := m.Verify(token, now.Add(16*time.Minute)); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestManager_ToleratesSmallClockSkew(t *testing.T) {
	m := testManager()
	now := time.Unix(1700000000, 0).UTC()

	token, _, err := m.Issue(now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// 10s past expiry is inside the leeway window.
	if _, err := m.Verify(token, now.Add(15*time.Minute+10*time.Second)); err != nil {
		t.Fatalf("expected skew tolerance, got %v", err)
	}
}

func TestManager_VerifyUsesSuppliedInstant(t *testing.T) {
	m := testManager()
	// Long before the wall clock: only the supplied instant can make this
	// token valid.
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	token, _, err := m.Issue(past)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := m.Verify(token, past.Add(time.Minute)); err != nil {
		t.Fatalf("expected verification at the supplied instant, got %v", err)
	}
	// Exact expiry still sits inside the leeway window.
	if _, err := m.Verify(token, past.Add(15*time.Minute)); err != nil {
		t.Fatalf("expected exact-expiry token accepted within leeway, got %v", err)
	}
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	m := testManager()
	other := NewManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
	now := time.Unix(1700000000, 0).UTC()

	token, _, err := other.Issue(now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := m.Verify(token, now); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}

func TestNewManager_NilWithoutSecret(t *testing.T) {
	if m := NewManager(config.AuthConfig{}); m != nil {
		t.Fatalf("expected nil manager without a secret")
	}
}
