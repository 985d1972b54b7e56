package mocks

import (
	"context"
	"sync"

	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/store"
)

// ItemStore is an in-memory implementation of store.ItemStore.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Item

	// CreateErr, when set, is returned by Create before any mutation.
	CreateErr error
}

// NewItemStore creates an empty in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]*domain.Item)}
}

var _ store.ItemStore = (*ItemStore)(nil)

// Create implements store.ItemStore.Create.
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = copyItem(item)
	return nil
}

// GetByID implements store.ItemStore.GetByID.
func (s *ItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return copyItem(item), nil
}

// List implements store.ItemStore.List.
func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, copyItem(item))
	}
	return items, nil
}

// Delete implements store.ItemStore.Delete.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// AddLike implements store.ItemStore.AddLike.
func (s *ItemStore) AddLike(ctx context.Context, itemID, userID string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	if !item.LikedBy(userID) {
		item.Likes = append(item.Likes, userID)
	}
	return copyItem(item), nil
}

// RemoveLike implements store.ItemStore.RemoveLike.
func (s *ItemStore) RemoveLike(ctx context.Context, itemID, userID string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	likes := item.Likes[:0]
	for _, id := range item.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	item.Likes = likes
	return copyItem(item), nil
}

func copyItem(item *domain.Item) *domain.Item {
	copied := *item
	copied.Likes = append([]string{}, item.Likes...)
	return &copied
}
