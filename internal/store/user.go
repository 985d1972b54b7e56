package store

import (
	"context"

	"github.com/wtwr-app/wtwr-api/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must carry a hashed
	// password; plaintext never reaches the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their store reference.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies the user's profile fields (name, avatar). Email and
	// password are immutable through this operation.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// List returns all users. Unfiltered and unpaginated.
	List(ctx context.Context) ([]*domain.User, error)
}
