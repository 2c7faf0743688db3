package identity_test

import (
	"context"
	"testing"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/identity"
	"boardhub.org/internal/store/memory"
	"boardhub.org/internal/token"
)

func newService(t *testing.T) (*identity.Service, *token.Service) {
	t.Helper()
	tokens, err := token.NewService("unit-test-secret")
	if err != nil {
		t.Fatalf("token.NewService: %v", err)
	}
	svc, err := identity.NewService(memory.New().Identities(), tokens)
	if err != nil {
		t.Fatalf("identity.NewService: %v", err)
	}
	return svc, tokens
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService(t)

	session, err := svc.Register(ctx, "Alice@Example.com", "Sup3r$ecret", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.Identity.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %s", session.Identity.Email)
	}
	if session.Identity.SecretHash == "Sup3r$ecret" {
		t.Fatal("secret stored in plaintext")
	}

	subject, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != session.Identity.ID {
		t.Fatalf("token subject %s, want %s", subject, session.Identity.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	cases := []struct{ email, secret, name string }{
		{"", "Sup3r$ecret", "Alice"},
		{"not-an-email", "Sup3r$ecret", "Alice"},
		{"alice@", "Sup3r$ecret", "Alice"},
		{"alice@example.com", "short", "Alice"},
		{"alice@example.com", "alllowercase1!", "Alice"},
		{"alice@example.com", "Sup3r$ecret", "   "},
	}
	for _, c := range cases {
		if _, err := svc.Register(ctx, c.email, c.secret, c.name); !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("Register(%q,%q,%q): expected validation error, got %v", c.email, c.secret, c.name, err)
		}
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, err := svc.Register(ctx, "alice@example.com", "Sup3r$ecret", "Alice"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "ALICE@example.com", "An0ther$ecret", "Alice Again")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginReturnsSubjectToken(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService(t)

	registered, err := svc.Register(ctx, "alice@example.com", "Sup3r$ecret", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	session, err := svc.Login(ctx, "alice@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	subject, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != registered.Identity.ID {
		t.Fatalf("decoded subject %s, want %s", subject, registered.Identity.ID)
	}
}

func TestLoginFailuresAreUnauthorizedNeverValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, err := svc.Register(ctx, "alice@example.com", "Sup3r$ecret", "Alice"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, c := range []struct{ email, secret string }{
		{"alice@example.com", "Wr0ng$ecret"},
		{"nobody@example.com", "Sup3r$ecret"},
		{"nobody@example.com", "x"}, // would fail the registration policy, still 401 here
	} {
		_, err := svc.Login(ctx, c.email, c.secret)
		if !apperr.IsKind(err, apperr.KindUnauthorized) {
			t.Fatalf("Login(%q): expected unauthorized, got %v", c.email, err)
		}
		if apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("Login(%q): must never be a validation failure", c.email)
		}
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	session, err := svc.Register(ctx, "alice@example.com", "Sup3r$ecret", "Alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	me, err := svc.Me(ctx, session.Identity.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", me)
	}

	if _, err := svc.Me(ctx, "no-such-identity"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Me(ctx, "  "); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for empty subject, got %v", err)
	}
}
