package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/ids"
	"boardhub.org/internal/token"
)

// Session is the result of a successful registration or login: the identity
// plus a long-lived bearer token for it.
type Session struct {
	Identity  *Identity
	Token     string
	ExpiresAt time.Time
}

// Service provides registration, login and identity lookup.
type Service struct {
	store  Store
	tokens *token.Service
	now    func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, tokens *token.Service, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("identity store is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}
	svc := &Service{store: store, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register creates an identity and issues a login-class token for it.
// A duplicate email yields Conflict; malformed input yields Validation.
func (s *Service) Register(ctx context.Context, email, secret, displayName string) (*Session, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperr.Validation("display name is required")
	}
	if err := ValidateSecret(secret); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email is already registered")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, apperr.FromStorage(err)
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return nil, err
	}
	id := &Identity{
		ID:          ids.New(),
		Email:       email,
		SecretHash:  hash,
		DisplayName: displayName,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, id); err != nil {
		return nil, apperr.FromStorage(err)
	}
	return s.session(id)
}

// Login authenticates credentials and issues a login-class token. Unknown
// email and wrong secret are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, secret string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || secret == "" {
		return nil, apperr.Validation("email and secret are required")
	}
	id, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, apperr.FromStorage(err)
	}
	if err := VerifySecret(id.SecretHash, secret); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.session(id)
}

// Me returns the identity behind a verified subject id. The token can outlive
// the account, so a missing record is NotFound rather than Unauthorized.
func (s *Service) Me(ctx context.Context, identityID string) (*Identity, error) {
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return nil, apperr.Unauthorized("not authenticated")
	}
	id, err := s.store.Find(ctx, identityID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.FromStorage(err)
	}
	return id, nil
}

func (s *Service) session(id *Identity) (*Session, error) {
	signed, expiresAt, err := s.tokens.Issue(id.ID, token.LifetimeLogin)
	if err != nil {
		return nil, err
	}
	return &Session{Identity: id, Token: signed, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return apperr.Validation("invalid email format")
	}
	if !strings.Contains(email[at+1:], ".") {
		return apperr.Validation("invalid email format")
	}
	return nil
}
