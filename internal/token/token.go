// Package token issues and verifies the signed, time-bounded identity tokens
// presented as bearer credentials. Tokens carry only the subject identifier;
// there is no server-side revocation state.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "boardhub"

var (
	// ErrInvalidToken covers every verification failure except expiry: bad
	// signature, wrong algorithm, malformed structure, missing claims. The
	// message is deliberately constant regardless of which part failed.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrExpiredToken is returned only for a well-formed, correctly signed
	// token whose expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Lifetime selects a token lifetime class.
type Lifetime time.Duration

const (
	// LifetimeSession is the short class for session-scoped tokens.
	LifetimeSession Lifetime = Lifetime(time.Hour)
	// LifetimeLogin is the long-lived class issued on registration and login.
	LifetimeLogin Lifetime = Lifetime(7 * 24 * time.Hour)
)

// Service signs and verifies tokens with a process-wide HS256 secret.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer overrides the issuer claim.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		if v := strings.TrimSpace(issuer); v != "" {
			s.issuer = v
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service. The secret comes from process
// configuration; construction fails when it is absent so the process can
// refuse to start rather than fall back to a known value.
func NewService(secret string, opts ...Option) (*Service, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("token: signing secret is not configured")
	}
	svc := &Service{
		secret: []byte(secret),
		issuer: defaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Issue signs a token for the given subject with the selected lifetime class.
func (s *Service) Issue(subjectID string, lifetime Lifetime) (string, time.Time, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", time.Time{}, errors.New("token: subject is required")
	}
	if lifetime <= 0 {
		return "", time.Time{}, errors.New("token: lifetime must be greater than zero")
	}

	now := s.now().UTC()
	expiresAt := now.Add(time.Duration(lifetime))
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, structure and expiry, and returns the embedded
// subject identifier. Signature and structure failures collapse to
// ErrInvalidToken; only a token that verified cleanly but has expired yields
// ErrExpiredToken.
func (s *Service) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.issuer))
	if err != nil {
		// A bad signature must mask every other detail, including expiry.
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrInvalidToken
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if err := s.validateClaims(claims); err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) validateClaims(claims *jwt.RegisteredClaims) error {
	if strings.TrimSpace(claims.Subject) == "" {
		return errors.New("subject missing")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	now := s.now().UTC()
	// Allow a small clock skew of 5 seconds when validating issued-at.
	if claims.IssuedAt.Time.After(now.Add(5 * time.Second)) {
		return errors.New("token issued in the future")
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}
	return nil
}
