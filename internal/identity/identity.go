// Package identity manages registered accounts: the records themselves,
// registration and login, and the verified-caller context threaded through
// request handling.
package identity

import (
	"context"
	"time"
)

// Identity is a registered account capable of authenticating.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	SecretHash  string    `json:"-"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store is the persistence port for identity records. Implementations report
// domain conditions as taxonomy errors (Conflict for a duplicate email,
// NotFound for a missing record) and anything else as a raw fault.
type Store interface {
	Create(ctx context.Context, id *Identity) error
	Find(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
}
