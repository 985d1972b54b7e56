package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/platform/logger"
	"github.com/wtwr-app/wtwr-api/internal/service/auth"
	"github.com/wtwr-app/wtwr-api/internal/store"
)

// UserHandler handles account-related API requests.
type UserHandler struct {
	userStore    store.UserStore
	tokenService auth.TokenService
	passwords    auth.PasswordHasher
	logger       *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwords auth.PasswordHasher,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userStore:    userStore,
		tokenService: tokenService,
		passwords:    passwords,
		logger:       log.With(slog.String("component", "user_handler")),
	}
}

// Signup handles POST /signup. The response is the public projection of
// the new account; the password hash never leaves the server.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := domain.NewUser(req.Email, req.Name, req.Avatar)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	hashed, err := h.passwords.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		HandleError(w, r, err)
		return
	}
	user.HashedPassword = hashed

	if err := h.userStore.Create(r.Context(), user); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user.Public())
}

// dummyPasswordHash is compared against when the email is unknown, so
// the miss path costs the same bcrypt work as a real comparison and
// response timing does not reveal whether an email is registered.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Signin handles POST /signin. A missing account and a wrong password
// fail identically so the endpoint cannot be used to enumerate emails.
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = h.passwords.Compare(dummyPasswordHash, req.Password)
			HandleError(w, r, auth.ErrInvalidCredentials)
			return
		}
		HandleError(w, r, err)
		return
	}

	if err := h.passwords.Compare(user.HashedPassword, req.Password); err != nil {
		HandleError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.tokenService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "user_id", user.ID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SigninResponse{Token: token})
}

// List handles GET /users. Returns public projections only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	projections := make([]domain.PublicUser, 0, len(users))
	for _, user := range users {
		projections = append(projections, user.Public())
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projections)
}

// GetCurrent handles GET /users/me. A token whose account no longer
// resolves (deleted out-of-band) yields 404.
func (h *UserHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user.Public())
}

// UpdateCurrent handles PATCH /users/me. Only name and avatar are
// mutable; absent fields keep their stored values.
func (h *UserHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleError(w, r, err)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleError(w, r, err)
		return
	}

	log.Debug("profile updated", slog.String("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, user.Public())
}
