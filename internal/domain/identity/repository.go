package identity

import (
	"context"

	"github.com/meditrack/backend/internal/domain/shared"
)

// Repository defines persistence operations for users
type Repository interface {
	shared.Repository[User]

	// FindByUsername finds a user by their unique username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername reports whether a user with the username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
