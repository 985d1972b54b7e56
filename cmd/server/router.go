package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/wtwr-app/wtwr-api/internal/api/middleware"
	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)
	r.Use(app.metrics.Middleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	authLimiter := apiMiddleware.NewRateLimiter(
		app.config.Server.AuthRatePerMinute,
		app.config.Server.AuthBurst,
	)

	// Credential endpoints (public, rate limited)
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Limit)
		r.Post("/signup", app.userHandler.Signup)
		r.Post("/signin", app.userHandler.Signin)
	})

	// Public reads
	r.Get("/users", app.userHandler.List)
	r.Get("/items", app.itemHandler.List)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/users/me", app.userHandler.GetCurrent)
		r.Patch("/users/me", app.userHandler.UpdateCurrent)
		r.Post("/items", app.itemHandler.Create)
		r.Put("/items/{itemId}/likes", app.itemHandler.Like)
		r.Delete("/items/{itemId}/likes", app.itemHandler.Unlike)
		r.Delete("/items/{itemId}", app.itemHandler.Delete)
	})

	// Observability endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// Unmatched routes yield the fixed not-found body.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Requested resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Requested resource not found")
	})

	return r
}
