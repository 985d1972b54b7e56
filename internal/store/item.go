package store

import (
	"context"

	"github.com/wtwr-app/wtwr-api/internal/domain"
)

// ItemStore defines the interface for clothing item persistence.
type ItemStore interface {
	// Create saves a new item to the store.
	// Returns ErrInvalidEntity if the item violates a store constraint.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item, including its like set.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// List returns all items with their like sets. Unfiltered and
	// unpaginated.
	List(ctx context.Context) ([]*domain.Item, error)

	// Delete removes an item and its likes.
	// Returns ErrItemNotFound if the item does not exist.
	// Ownership is the caller's concern; the store does not check it.
	Delete(ctx context.Context, id string) error

	// AddLike idempotently adds userID to the item's like set and returns
	// the updated item. Adding an existing like is a no-op.
	// Returns ErrItemNotFound if the item does not exist.
	AddLike(ctx context.Context, itemID, userID string) (*domain.Item, error)

	// RemoveLike idempotently removes userID from the item's like set and
	// returns the updated item. Removing an absent like is a no-op, not
	// an error. Returns ErrItemNotFound if the item does not exist.
	RemoveLike(ctx context.Context, itemID, userID string) (*domain.Item, error)
}
