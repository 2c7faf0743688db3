// Package pg implements the persistence ports over PostgreSQL.
//
// Expected schema:
//
//	create table identities (
//	    id           text primary key,
//	    email        text not null unique,
//	    secret_hash  text not null,
//	    display_name text not null,
//	    created_at   timestamptz not null default now()
//	);
//
//	create table boards (
//	    id          text primary key,
//	    name        text not null,
//	    description text not null default '',
//	    created_at  timestamptz not null default now()
//	);
//
//	create table board_members (
//	    id          text primary key,
//	    board_id    text not null references boards(id),
//	    identity_id text not null references identities(id),
//	    role        text not null,
//	    created_at  timestamptz not null default now(),
//	    unique (board_id, identity_id)
//	);
package pg

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jackc/pgx/v5/pgconn"

	"boardhub.org/internal/board"
	"boardhub.org/internal/identity"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// Store wraps a pooled connection and exposes the persistence ports.
type Store struct {
	db *sql.DB
}

// Open connects to the database behind the DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection; used by tests.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Identities exposes the identity persistence port.
func (s *Store) Identities() identity.Store { return (*identityStore)(s) }

// Boards exposes the board persistence port.
func (s *Store) Boards() board.BoardStore { return (*boardStore)(s) }

// Members exposes the membership registry port.
func (s *Store) Members() board.MembershipRegistry { return (*membershipStore)(s) }

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
