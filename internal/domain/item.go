package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Common item validation errors. All wrap ErrValidation so the error
// mapper classifies them as client faults, never internal failures.
var (
	ErrItemNameLength   = fmt.Errorf("%w: item name must be between 2 and 30 characters", ErrValidation)
	ErrInvalidImageURL  = fmt.Errorf("%w: item image must be a well-formed URL", ErrValidation)
	ErrInvalidWeather   = fmt.Errorf("%w: weather must be one of: hot, warm, cold", ErrValidation)
	ErrEmptyItemOwner   = fmt.Errorf("%w: item owner cannot be empty", ErrValidation)
	ErrInvalidItemOwner = fmt.Errorf("%w: item owner must be a valid store reference", ErrValidation)
)

// Weather is the fixed weather category of a clothing item.
type Weather string

// Recognized weather categories.
const (
	WeatherHot  Weather = "hot"
	WeatherWarm Weather = "warm"
	WeatherCold Weather = "cold"
)

// Valid reports whether w is a recognized weather category.
func (w Weather) Valid() bool {
	switch w {
	case WeatherHot, WeatherWarm, WeatherCold:
		return true
	}
	return false
}

// Item represents a clothing item in the catalog. The owner reference is
// immutable after creation. Likes is the set of account references that
// approved the item; membership, not order, is the tracked state.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	Weather   Weather   `json:"weather"`
	OwnerID   string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewItem creates a new Item owned by ownerID, with a fresh store
// reference and an empty like set. Returns an error if validation fails.
func NewItem(name, imageURL string, weather Weather, ownerID string) (*Item, error) {
	item := &Item{
		ID:        NewID(),
		Name:      name,
		ImageURL:  imageURL,
		Weather:   weather,
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if !IsValidID(i.ID) {
		return ErrInvalidID
	}
	if n := utf8.RuneCountInString(i.Name); n < 2 || n > 30 {
		return ErrItemNameLength
	}
	if !validURLFormat(i.ImageURL) {
		return ErrInvalidImageURL
	}
	if !i.Weather.Valid() {
		return ErrInvalidWeather
	}
	if i.OwnerID == "" {
		return ErrEmptyItemOwner
	}
	if !IsValidID(i.OwnerID) {
		return ErrInvalidItemOwner
	}
	return nil
}

// LikedBy reports whether userID is in the item's like set.
func (i *Item) LikedBy(userID string) bool {
	for _, id := range i.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
