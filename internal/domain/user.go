package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Common user validation errors. All wrap ErrValidation so the error
// mapper classifies them as client faults, never internal failures.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	ErrNameLength          = fmt.Errorf("%w: name must be between 2 and 30 characters", ErrValidation)
	ErrInvalidAvatarURL    = fmt.Errorf("%w: avatar must be a well-formed URL", ErrValidation)
)

// User represents a registered account of the wardrobe application.
// HashedPassword is never serialized; any data returned to a client goes
// through the PublicUser projection.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Name           string    `json:"name,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with a fresh store reference and timestamps.
// Name and avatar are optional. The caller is responsible for hashing the
// password and setting HashedPassword before the user is persisted.
func NewUser(email, name, avatar string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        NewID(),
		Email:     email,
		Name:      name,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.validateProfile(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the persisted-user invariants: a well-formed store
// reference, a well-formed email, a password hash, and the optional
// profile constraints.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	if !IsValidID(u.ID) {
		return ErrInvalidID
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return u.validateProfile()
}

func (u *User) validateProfile() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.Name != "" {
		if n := utf8.RuneCountInString(u.Name); n < 2 || n > 30 {
			return ErrNameLength
		}
	}
	if u.Avatar != "" && !validURLFormat(u.Avatar) {
		return ErrInvalidAvatarURL
	}
	return nil
}

// PublicUser is the projection of an account that is safe to return to
// any client. It deliberately has no password hash field.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// validEmailFormat performs a basic structural check: one @ with a
// non-empty local part and a dotted domain. The API layer applies the
// stricter validator tag; this is defense in depth at the entity level.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}

// validURLFormat reports whether s parses as an absolute http(s) URL.
func validURLFormat(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
