package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/domain"
)

// actorID extracts the authenticated actor's user ID from the request
// context. The ID is placed there by the authentication middleware;
// absence on a protected route indicates a wiring error, reported as 401.
func actorID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// pathID extracts a store reference from the URL path and validates its
// shape before any store call. The returned error carries the
// client-facing message for the parameter (e.g. "Invalid item ID").
func pathID(r *http.Request, paramName, label string) (string, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return "", domain.NewValidationError(paramName,
			fmt.Sprintf("Missing %s", label), domain.ErrValidation)
	}

	id, err := domain.ParseID(raw)
	if err != nil {
		return "", domain.NewValidationError(paramName,
			fmt.Sprintf("Invalid %s", label), domain.ErrInvalidID)
	}

	return id, nil
}
