package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface using a
// PostgreSQL database as the storage backend. The like set lives in the
// item_likes join table; its primary key makes like addition naturally
// idempotent.
type PostgresItemStore struct {
	db *sql.DB
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface.
func NewPostgresItemStore(db *sql.DB) *PostgresItemStore {
	return &PostgresItemStore{db: db}
}

var _ store.ItemStore = (*PostgresItemStore)(nil)

// Create implements store.ItemStore.Create.
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, name, image_url, weather, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Name, item.ImageURL, string(item.Weather),
		item.OwnerID, item.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ItemStore.GetByID.
func (s *PostgresItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	var weather string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, weather, owner_id, created_at
		 FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &item.ImageURL, &weather,
		&item.OwnerID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, MapError(err)
	}
	item.Weather = domain.Weather(weather)

	likes, err := s.likesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Likes = likes

	return &item, nil
}

// List implements store.ItemStore.List. Likes are loaded in one pass and
// merged in memory to avoid a query per item.
func (s *PostgresItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_url, weather, owner_id, created_at
		 FROM items ORDER BY created_at`,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	items := []*domain.Item{}
	byID := map[string]*domain.Item{}
	for rows.Next() {
		var item domain.Item
		var weather string
		if err := rows.Scan(&item.ID, &item.Name, &item.ImageURL, &weather,
			&item.OwnerID, &item.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		item.Weather = domain.Weather(weather)
		item.Likes = []string{}
		items = append(items, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	likeRows, err := s.db.QueryContext(ctx,
		`SELECT item_id, user_id FROM item_likes`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = likeRows.Close() }()

	for likeRows.Next() {
		var itemID, userID string
		if err := likeRows.Scan(&itemID, &userID); err != nil {
			return nil, MapError(err)
		}
		if item, ok := byID[itemID]; ok {
			item.Likes = append(item.Likes, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// Delete implements store.ItemStore.Delete. Likes go with the item via
// ON DELETE CASCADE.
func (s *PostgresItemStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrItemNotFound
	}

	return nil
}

// AddLike implements store.ItemStore.AddLike. ON CONFLICT DO NOTHING
// makes repeated likes a no-op; a foreign key violation means the item
// or the actor is gone.
func (s *PostgresItemStore) AddLike(ctx context.Context, itemID, userID string) (*domain.Item, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO item_likes (item_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (item_id, user_id) DO NOTHING`,
		itemID, userID,
	)
	if err != nil {
		return nil, classifyLikeError(err)
	}

	return s.GetByID(ctx, itemID)
}

// classifyLikeError maps a like-insert failure to the sentinel for the
// missing entity. The join table carries two foreign keys; the fired
// constraint tells whether the item or the actor no longer exists.
func classifyLikeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		switch pgErr.ConstraintName {
		case "item_likes_item_id_fkey":
			return fmt.Errorf("%w: %v", store.ErrItemNotFound, err)
		case "item_likes_user_id_fkey":
			return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
		}
	}
	return MapError(err)
}

// RemoveLike implements store.ItemStore.RemoveLike. Removing an absent
// like affects zero rows and is not an error; only a missing item is.
func (s *PostgresItemStore) RemoveLike(ctx context.Context, itemID, userID string) (*domain.Item, error) {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM item_likes WHERE item_id = $1 AND user_id = $2`,
		itemID, userID,
	)
	if err != nil {
		return nil, MapError(err)
	}

	return s.GetByID(ctx, itemID)
}

func (s *PostgresItemStore) likesFor(ctx context.Context, itemID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM item_likes WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, MapError(err)
		}
		likes = append(likes, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return likes, nil
}
