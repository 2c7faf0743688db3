// Package board models shared boards and their role-bearing memberships, and
// hosts the permission engine that decides every board operation.
package board

import (
	"strings"
	"time"

	"boardhub.org/internal/apperr"
)

// Role governs what a member may do on a board.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
)

// ParseRole normalizes a role name case-insensitively.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleEditor:
		return RoleEditor, nil
	case RoleViewer:
		return RoleViewer, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", apperr.Validation("role must be one of OWNER, EDITOR, VIEWER, MEMBER")
	}
}

// Board is a shared collaborative resource.
type Board struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// Members is attached by the service for API responses; stores do not
	// populate it.
	Members []*Membership `json:"members,omitempty"`
}

// Membership is the role-bearing relationship between an identity and a
// board. An identity holds at most one membership per board.
type Membership struct {
	ID         string    `json:"id"`
	BoardID    string    `json:"boardId"`
	IdentityID string    `json:"identityId"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	nameMaxLen        = 70
	descriptionMaxLen = 500
)

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("board name is required")
	}
	if len(name) > nameMaxLen {
		return apperr.Validation("board name must be at most 70 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > descriptionMaxLen {
		return apperr.Validation("description must be at most 500 characters")
	}
	return nil
}
