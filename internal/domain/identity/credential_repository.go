package identity

import (
	"context"
)

// CredentialRepository defines the persistence interface for credentials.
// Credentials support create and lookup only; there is no update or delete.
type CredentialRepository interface {
	// Create persists a new credential. Returns shared.ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, credential *Credential) error

	// FindByUsername finds a credential by username. Returns shared.ErrNotFound
	// if no such user is registered.
	FindByUsername(ctx context.Context, username string) (*Credential, error)

	// Count returns the number of registered credentials.
	Count(ctx context.Context) (int64, error)
}
