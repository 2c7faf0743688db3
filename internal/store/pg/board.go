package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/board"
)

type boardStore Store

func (s *boardStore) Create(ctx context.Context, b *board.Board, owner *board.Membership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		insert into boards (id, name, description, created_at)
		values ($1, $2, $3, $4)
	`, b.ID, b.Name, b.Description, b.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		insert into board_members (id, board_id, identity_id, role, created_at)
		values ($1, $2, $3, $4, $5)
	`, owner.ID, owner.BoardID, owner.IdentityID, owner.Role, owner.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *boardStore) Find(ctx context.Context, boardID string) (*board.Board, error) {
	var b board.Board
	err := s.db.QueryRowContext(ctx, `
		select id, name, description, created_at
		from boards
		where id = $1
	`, boardID).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("board not found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *boardStore) ListForIdentity(ctx context.Context, identityID string) ([]*board.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		select b.id, b.name, b.description, b.created_at
		from boards b
		join board_members m on m.board_id = b.id
		where m.identity_id = $1
		order by b.created_at, b.id
	`, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*board.Board
	for rows.Next() {
		var b board.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

func (s *boardStore) Update(ctx context.Context, boardID string, upd board.BoardUpdate) (*board.Board, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if len(sets) == 0 {
		return s.Find(ctx, boardID)
	}
	args = append(args, boardID)

	var b board.Board
	query := fmt.Sprintf(`
		update boards set %s
		where id = $%d
		returning id, name, description, created_at
	`, strings.Join(sets, ", "), len(args))
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("board not found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes the board and its memberships in one transaction, so no
// reader can observe an orphaned membership or a memberless deleted board.
func (s *boardStore) Delete(ctx context.Context, boardID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `delete from board_members where board_id = $1`, boardID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from boards where id = $1`, boardID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("board not found")
	}
	return tx.Commit()
}

type membershipStore Store

func (s *membershipStore) Role(ctx context.Context, boardID, identityID string) (board.Role, bool, error) {
	var role board.Role
	err := s.db.QueryRowContext(ctx, `
		select role from board_members
		where board_id = $1 and identity_id = $2
	`, boardID, identityID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return role, true, nil
}

func (s *membershipStore) Find(ctx context.Context, boardID, memberID string) (*board.Membership, error) {
	var m board.Membership
	err := s.db.QueryRowContext(ctx, `
		select id, board_id, identity_id, role, created_at
		from board_members
		where id = $1 and board_id = $2
	`, memberID, boardID).Scan(&m.ID, &m.BoardID, &m.IdentityID, &m.Role, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *membershipStore) List(ctx context.Context, boardID string) ([]*board.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, board_id, identity_id, role, created_at
		from board_members
		where board_id = $1
		order by created_at, id
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*board.Membership{}
	for rows.Next() {
		var m board.Membership
		if err := rows.Scan(&m.ID, &m.BoardID, &m.IdentityID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

func (s *membershipStore) Create(ctx context.Context, m *board.Membership) error {
	_, err := s.db.ExecContext(ctx, `
		insert into board_members (id, board_id, identity_id, role, created_at)
		values ($1, $2, $3, $4, $5)
	`, m.ID, m.BoardID, m.IdentityID, m.Role, m.CreatedAt)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok {
			switch pgErr.Code {
			case pgErrUniqueViolation:
				return apperr.Conflict("already a member")
			case pgErrForeignKeyViolation:
				return apperr.NotFound("board not found")
			}
		}
		return err
	}
	return nil
}

func (s *membershipStore) UpdateRole(ctx context.Context, memberID string, role board.Role) (*board.Membership, error) {
	var m board.Membership
	err := s.db.QueryRowContext(ctx, `
		update board_members set role = $1
		where id = $2
		returning id, board_id, identity_id, role, created_at
	`, role, memberID).Scan(&m.ID, &m.BoardID, &m.IdentityID, &m.Role, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *membershipStore) Delete(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, `delete from board_members where id = $1`, memberID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("member not found")
	}
	return nil
}
