package board

import (
	"context"
	"errors"
	"strings"
	"time"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/identity"
	"boardhub.org/internal/ids"
)

// Service enforces board-level rules on top of the permission engine: no
// duplicate memberships, no self-demotion, no orphaned memberships after a
// board is deleted.
//
// The role-lookup-then-mutate sequence is not transactionally fenced: a
// concurrent role change between lookup and write can act on a stale
// decision. Accepted for this admin-scale, low-contention workload.
type Service struct {
	boards     BoardStore
	members    MembershipRegistry
	identities identity.Store
	now        func() time.Time
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

// NewService constructs a Service over the three ports.
func NewService(boards BoardStore, members MembershipRegistry, identities identity.Store, opts ...ServiceOption) (*Service, error) {
	if boards == nil || members == nil || identities == nil {
		return nil, errors.New("board, membership and identity stores are required")
	}
	svc := &Service{boards: boards, members: members, identities: identities, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create makes a board with the requester as its sole initial OWNER.
func (s *Service) Create(ctx context.Context, requesterID, name, description string) (*Board, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b := &Board{
		ID:          ids.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	owner := &Membership{
		ID:         ids.New(),
		BoardID:    b.ID,
		IdentityID: requesterID,
		Role:       RoleOwner,
		CreatedAt:  now,
	}
	if err := s.boards.Create(ctx, b, owner); err != nil {
		return nil, apperr.FromStorage(err)
	}
	b.Members = []*Membership{owner}
	return b, nil
}

// List returns every board the requester is a member of, with members
// attached.
func (s *Service) List(ctx context.Context, requesterID string) ([]*Board, error) {
	boards, err := s.boards.ListForIdentity(ctx, requesterID)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	for _, b := range boards {
		members, err := s.members.List(ctx, b.ID)
		if err != nil {
			return nil, apperr.FromStorage(err)
		}
		b.Members = members
	}
	return boards, nil
}

// Get returns a board the requester holds any role on. Non-members get
// NotFound; board existence is not disclosed.
func (s *Service) Get(ctx context.Context, requesterID, boardID string) (*Board, error) {
	b, err := s.authorize(ctx, OpReadBoard, requesterID, boardID)
	if err != nil {
		return nil, err
	}
	members, err := s.members.List(ctx, boardID)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	b.Members = members
	return b, nil
}

// Update applies a partial board mutation. OWNER only.
func (s *Service) Update(ctx context.Context, requesterID, boardID string, upd BoardUpdate) (*Board, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if err := validateName(trimmed); err != nil {
			return nil, err
		}
		upd.Name = &trimmed
	}
	if upd.Description != nil {
		trimmed := strings.TrimSpace(*upd.Description)
		if err := validateDescription(trimmed); err != nil {
			return nil, err
		}
		upd.Description = &trimmed
	}

	if _, err := s.authorize(ctx, OpUpdateBoard, requesterID, boardID); err != nil {
		return nil, err
	}
	b, err := s.boards.Update(ctx, boardID, upd)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	members, err := s.members.List(ctx, boardID)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	b.Members = members
	return b, nil
}

// Delete removes a board and cascades to every membership atomically. OWNER
// only; deleting an already-deleted board is NotFound, never a silent
// success.
func (s *Service) Delete(ctx context.Context, requesterID, boardID string) error {
	if _, err := s.authorize(ctx, OpDeleteBoard, requesterID, boardID); err != nil {
		return err
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		return apperr.FromStorage(err)
	}
	return nil
}

// Invite grants the target identity a role on the board. OWNER only; the
// target must exist and must not already hold a membership there.
func (s *Service) Invite(ctx context.Context, requesterID, boardID, targetID string, role Role) (*Membership, error) {
	if _, err := s.authorize(ctx, OpInviteMember, requesterID, boardID); err != nil {
		return nil, err
	}

	if _, err := s.identities.Find(ctx, targetID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.FromStorage(err)
	}
	if _, ok, err := s.members.Role(ctx, boardID, targetID); err != nil {
		return nil, apperr.FromStorage(err)
	} else if ok {
		return nil, apperr.Conflict("already a member")
	}

	m := &Membership{
		ID:         ids.New(),
		BoardID:    boardID,
		IdentityID: targetID,
		Role:       role,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, apperr.FromStorage(err)
	}
	return m, nil
}

// UpdateMemberRole changes an existing membership's role. OWNER only. A
// requester can never change their own role, even as the sole owner; the
// check runs before any write.
func (s *Service) UpdateMemberRole(ctx context.Context, requesterID, boardID, memberID string, role Role) (*Membership, error) {
	if _, err := s.authorize(ctx, OpUpdateMemberRole, requesterID, boardID); err != nil {
		return nil, err
	}
	m, err := s.members.Find(ctx, boardID, memberID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.FromStorage(err)
	}
	if m.IdentityID == requesterID {
		return nil, apperr.BadRequest("cannot change your own role")
	}
	updated, err := s.members.UpdateRole(ctx, memberID, role)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return updated, nil
}

// RemoveMember deletes a membership from the board. OWNER only.
func (s *Service) RemoveMember(ctx context.Context, requesterID, boardID, memberID string) error {
	if _, err := s.authorize(ctx, OpRemoveMember, requesterID, boardID); err != nil {
		return err
	}
	if _, err := s.members.Find(ctx, boardID, memberID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.NotFound("member not found")
		}
		return apperr.FromStorage(err)
	}
	if err := s.members.Delete(ctx, memberID); err != nil {
		return apperr.FromStorage(err)
	}
	return nil
}

// authorize loads the board, resolves the requester's role and submits the
// operation to the permission engine.
func (s *Service) authorize(ctx context.Context, op Operation, requesterID, boardID string) (*Board, error) {
	b, err := s.boards.Find(ctx, boardID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("board not found")
		}
		return nil, apperr.FromStorage(err)
	}
	role, ok, err := s.members.Role(ctx, boardID, requesterID)
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	if err := Decide(op, role, ok); err != nil {
		return nil, err
	}
	return b, nil
}
