package board

import "context"

// BoardUpdate carries a partial board mutation; nil fields are untouched.
type BoardUpdate struct {
	Name        *string
	Description *string
}

// BoardStore is the persistence port for board records. Implementations
// report missing records as taxonomy NotFound errors and infrastructure
// faults as raw errors.
type BoardStore interface {
	// Create persists a board together with its initial owner membership as
	// one atomic write.
	Create(ctx context.Context, b *Board, owner *Membership) error
	Find(ctx context.Context, boardID string) (*Board, error)
	// ListForIdentity returns the boards on which the identity holds any
	// membership, oldest first.
	ListForIdentity(ctx context.Context, identityID string) ([]*Board, error)
	Update(ctx context.Context, boardID string, upd BoardUpdate) (*Board, error)
	// Delete removes the board and every membership referencing it in one
	// atomic operation; no reader may observe one without the other.
	Delete(ctx context.Context, boardID string) error
}

// MembershipRegistry is the persistence port for membership records. The
// permission engine consumes its role lookups but never embeds storage logic.
type MembershipRegistry interface {
	// Role resolves the identity's role on a board; ok is false when the
	// identity holds no membership there.
	Role(ctx context.Context, boardID, identityID string) (role Role, ok bool, err error)
	// Find resolves a membership by id scoped to a board; a membership that
	// exists on a different board is NotFound here.
	Find(ctx context.Context, boardID, memberID string) (*Membership, error)
	List(ctx context.Context, boardID string) ([]*Membership, error)
	// Create persists a membership; a duplicate (board, identity) pair is a
	// taxonomy Conflict.
	Create(ctx context.Context, m *Membership) error
	UpdateRole(ctx context.Context, memberID string, role Role) (*Membership, error)
	Delete(ctx context.Context, memberID string) error
}
