package pg

import (
	"context"
	"database/sql"
	"errors"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/identity"
)

type identityStore Store

func (s *identityStore) Create(ctx context.Context, id *identity.Identity) error {
	_, err := s.db.ExecContext(ctx, `
		insert into identities (id, email, secret_hash, display_name, created_at)
		values ($1, $2, $3, $4, $5)
	`, id.ID, id.Email, id.SecretHash, id.DisplayName, id.CreatedAt)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return apperr.Conflict("email is already registered")
		}
		return err
	}
	return nil
}

func (s *identityStore) Find(ctx context.Context, identityID string) (*identity.Identity, error) {
	var id identity.Identity
	err := s.db.QueryRowContext(ctx, `
		select id, email, secret_hash, display_name, created_at
		from identities
		where id = $1
	`, identityID).Scan(&id.ID, &id.Email, &id.SecretHash, &id.DisplayName, &id.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *identityStore) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	var id identity.Identity
	err := s.db.QueryRowContext(ctx, `
		select id, email, secret_hash, display_name, created_at
		from identities
		where email = $1
	`, email).Scan(&id.ID, &id.Email, &id.SecretHash, &id.DisplayName, &id.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}
