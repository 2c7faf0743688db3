// Package memory implements every persistence port over process-local maps.
// It backs the service when no database is configured and substitutes for
// the real stores in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/board"
	"boardhub.org/internal/identity"
)

// Store holds all records behind a single mutex; multi-record mutations such
// as the board-deletion cascade run inside one critical section, so no
// reader observes a board without its memberships or vice versa.
type Store struct {
	mu         sync.RWMutex
	identities map[string]*identity.Identity
	emails     map[string]string // normalized email -> identity id
	boards     map[string]*board.Board
	members    map[string]*board.Membership
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		identities: make(map[string]*identity.Identity),
		emails:     make(map[string]string),
		boards:     make(map[string]*board.Board),
		members:    make(map[string]*board.Membership),
	}
}

// Identities exposes the identity persistence port.
func (s *Store) Identities() identity.Store { return (*identityStore)(s) }

// Boards exposes the board persistence port.
func (s *Store) Boards() board.BoardStore { return (*boardStore)(s) }

// Members exposes the membership registry port.
func (s *Store) Members() board.MembershipRegistry { return (*membershipStore)(s) }

type identityStore Store

func (s *identityStore) Create(_ context.Context, id *identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(id.Email)
	if _, exists := s.emails[email]; exists {
		return apperr.Conflict("email is already registered")
	}
	cp := *id
	s.identities[id.ID] = &cp
	s.emails[email] = id.ID
	return nil
}

func (s *identityStore) Find(_ context.Context, identityID string) (*identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.identities[identityID]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *id
	return &cp, nil
}

func (s *identityStore) FindByEmail(_ context.Context, email string) (*identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identityID, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *s.identities[identityID]
	return &cp, nil
}

type boardStore Store

func (s *boardStore) Create(_ context.Context, b *board.Board, owner *board.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bc := *b
	bc.Members = nil
	oc := *owner
	s.boards[b.ID] = &bc
	s.members[owner.ID] = &oc
	return nil
}

func (s *boardStore) Find(_ context.Context, boardID string) (*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[boardID]
	if !ok {
		return nil, apperr.NotFound("board not found")
	}
	cp := *b
	return &cp, nil
}

func (s *boardStore) ListForIdentity(_ context.Context, identityID string) ([]*board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var result []*board.Board
	for _, m := range s.members {
		if m.IdentityID != identityID {
			continue
		}
		if _, dup := seen[m.BoardID]; dup {
			continue
		}
		seen[m.BoardID] = struct{}{}
		if b, ok := s.boards[m.BoardID]; ok {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *boardStore) Update(_ context.Context, boardID string, upd board.BoardUpdate) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[boardID]
	if !ok {
		return nil, apperr.NotFound("board not found")
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Description != nil {
		b.Description = *upd.Description
	}
	cp := *b
	return &cp, nil
}

func (s *boardStore) Delete(_ context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return apperr.NotFound("board not found")
	}
	delete(s.boards, boardID)
	for memberID, m := range s.members {
		if m.BoardID == boardID {
			delete(s.members, memberID)
		}
	}
	return nil
}

type membershipStore Store

func (s *membershipStore) Role(_ context.Context, boardID, identityID string) (board.Role, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.BoardID == boardID && m.IdentityID == identityID {
			return m.Role, true, nil
		}
	}
	return "", false, nil
}

func (s *membershipStore) Find(_ context.Context, boardID, memberID string) (*board.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberID]
	if !ok || m.BoardID != boardID {
		return nil, apperr.NotFound("member not found")
	}
	cp := *m
	return &cp, nil
}

func (s *membershipStore) List(_ context.Context, boardID string) ([]*board.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []*board.Membership{}
	for _, m := range s.members {
		if m.BoardID == boardID {
			cp := *m
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *membershipStore) Create(_ context.Context, m *board.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.BoardID == m.BoardID && existing.IdentityID == m.IdentityID {
			return apperr.Conflict("already a member")
		}
	}
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *membershipStore) UpdateRole(_ context.Context, memberID string, role board.Role) (*board.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, apperr.NotFound("member not found")
	}
	m.Role = role
	cp := *m
	return &cp, nil
}

func (s *membershipStore) Delete(_ context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[memberID]; !ok {
		return apperr.NotFound("member not found")
	}
	delete(s.members, memberID)
	return nil
}
