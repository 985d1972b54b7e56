package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/service/auth"
	"github.com/wtwr-app/wtwr-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// SafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func SafeErrorMessage(err error) string {
	if err == nil {
		return "An error occurred on the server"
	}

	// Structural validation failures name the offending field.
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationMessage(validationErrs)
	}

	// ValidationErrors built at the point of failure carry a message
	// composed deliberately for the client.
	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, domain.ErrNotOwner):
		return "You are not authorized to delete this item"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Requested resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid data provided"

	default:
		return "An error occurred on the server"
	}
}

// HandleError is the terminal step of the request pipeline for any typed
// failure: it maps the error to a status code and sanitized message,
// writes the standard JSON error body, and logs the redacted cause. It
// must run exactly once per failed request.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := SafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// validationMessage renders the first violation as a message naming the
// offending field and constraint.
func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}

	fe := errs[0]
	field := fe.Field()
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %q field must be filled in", field)
	case "min":
		return fmt.Sprintf("The minimum length of the %q field is %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("The maximum length of the %q field is %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %q field must be a valid email", field)
	case "url":
		return fmt.Sprintf("The %q field must be a valid URL", field)
	case "oneof":
		choices := strings.Join(strings.Fields(fe.Param()), ", ")
		return fmt.Sprintf("The %q field must be one of: %s", field, choices)
	default:
		return fmt.Sprintf("The %q field is invalid", field)
	}
}
