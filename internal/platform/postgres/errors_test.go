package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/wtwr-app/wtwr-api/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil stays nil",
			err:      nil,
			expected: nil,
		},
		{
			name:     "no rows",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "wrapped no rows",
			err:      fmt.Errorf("query user: %w", sql.ErrNoRows),
			expected: store.ErrNotFound,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			expected: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "item_likes_item_id_fkey"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "items_weather_check"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation",
			err:      &pgconn.PgError{Code: "23502", ColumnName: "email"},
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			if tc.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}
}

func TestMapError_PassesThroughUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	assert.Equal(t, cause, MapError(cause))

	// Other pg codes are not classified either.
	serialization := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(serialization), MapError(serialization))
}

func TestClassifyLikeError(t *testing.T) {
	itemGone := fmt.Errorf("insert like: %w",
		&pgconn.PgError{Code: "23503", ConstraintName: "item_likes_item_id_fkey"})
	actorGone := fmt.Errorf("insert like: %w",
		&pgconn.PgError{Code: "23503", ConstraintName: "item_likes_user_id_fkey"})

	assert.ErrorIs(t, classifyLikeError(itemGone), store.ErrItemNotFound)
	assert.ErrorIs(t, classifyLikeError(actorGone), store.ErrUserNotFound)

	// Non-FK failures fall through to the generic mapping.
	assert.ErrorIs(t,
		classifyLikeError(&pgconn.PgError{Code: "23505"}), store.ErrDuplicate)
	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, plain, classifyLikeError(plain))
}

func TestViolationPredicates(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(nil))
}
