package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService(""); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewService("   "); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	signed, expiresAt, err := svc.Issue("identity-42", LifetimeSession)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	until := time.Until(expiresAt)
	if until <= 59*time.Minute || until > time.Hour {
		t.Fatalf("unexpected session expiry horizon: %v", until)
	}

	subject, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "identity-42" {
		t.Fatalf("unexpected subject: %s", subject)
	}
}

func TestLifetimeClasses(t *testing.T) {
	svc, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	_, sessionExp, err := svc.Issue("identity-1", LifetimeSession)
	if err != nil {
		t.Fatalf("Issue session: %v", err)
	}
	_, loginExp, err := svc.Issue("identity-1", LifetimeLogin)
	if err != nil {
		t.Fatalf("Issue login: %v", err)
	}
	if gap := loginExp.Sub(sessionExp); gap < 6*24*time.Hour {
		t.Fatalf("login class should outlive session class by days, gap=%v", gap)
	}
}

func TestIssueRejectsBadInput(t *testing.T) {
	svc, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, _, err := svc.Issue("", LifetimeSession); err == nil {
		t.Fatal("expected error for empty subject")
	}
	if _, _, err := svc.Issue("identity-1", 0); err == nil {
		t.Fatal("expected error for zero lifetime")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	signed, _, err := svc.Issue("identity-42", LifetimeSession)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one byte in each segment; every variant must collapse to the same
	// generic invalid-token error.
	segments := strings.Split(signed, ".")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i := range segments {
		mutated := make([]string, 3)
		copy(mutated, segments)
		seg := []byte(mutated[i])
		if seg[0] == 'A' {
			seg[0] = 'B'
		} else {
			seg[0] = 'A'
		}
		mutated[i] = string(seg)
		if _, err := svc.Verify(strings.Join(mutated, ".")); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("segment %d tamper: expected ErrInvalidToken, got %v", i, err)
		}
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuerSvc, err := NewService("secret-a")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	verifierSvc, err := NewService("secret-b")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	signed, _, err := issuerSvc.Issue("identity-42", LifetimeSession)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifierSvc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpiredTokenIsDistinct(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuing, err := NewService("unit-test-secret", WithClock(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	signed, _, err := issuing.Issue("identity-42", LifetimeSession)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifying, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	_, err = verifying.Verify(signed)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expiry must be reported distinctly from generic invalidity")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, err := NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	for _, raw := range []string{"", "   ", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
