package api

import (
	"time"

	"github.com/wtwr-app/wtwr-api/internal/domain"
)

// Common request/response structures

// SignupRequest defines the payload for the account creation endpoint.
// Name and avatar are optional; avatar requiredness varied across early
// revisions of the API, and this implementation settles on optional.
type SignupRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar"   validate:"omitempty,url"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest defines the payload for the login endpoint.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninResponse defines the successful response for the login endpoint.
type SigninResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest defines the payload for the profile update
// endpoint. Both fields are optional; absent fields keep their stored
// values.
type UpdateProfileRequest struct {
	Name   *string `json:"name"   validate:"omitempty,min=2,max=30"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

// CreateItemRequest defines the payload for the item creation endpoint.
type CreateItemRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=30"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Weather  string `json:"weather"  validate:"required,oneof=hot warm cold"`
}

// ItemResponse represents a clothing item as returned to clients.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	Weather   string    `json:"weather"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse carries a confirmation message for operations with no
// resource payload.
type MessageResponse struct {
	Message string `json:"message"`
}

func itemToResponse(item *domain.Item) ItemResponse {
	likes := item.Likes
	if likes == nil {
		likes = []string{}
	}
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		ImageURL:  item.ImageURL,
		Weather:   string(item.Weather),
		Owner:     item.OwnerID,
		Likes:     likes,
		CreatedAt: item.CreatedAt,
	}
}
