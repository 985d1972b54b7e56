package api

import (
	"log/slog"
	"net/http"

	"github.com/wtwr-app/wtwr-api/internal/api/shared"
	"github.com/wtwr-app/wtwr-api/internal/domain"
	"github.com/wtwr-app/wtwr-api/internal/platform/logger"
	"github.com/wtwr-app/wtwr-api/internal/service/auth"
	"github.com/wtwr-app/wtwr-api/internal/store"
)

// ItemHandler handles clothing item API requests.
type ItemHandler struct {
	itemStore store.ItemStore
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler with the given dependencies.
func NewItemHandler(itemStore store.ItemStore, log *slog.Logger) *ItemHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ItemHandler{
		itemStore: itemStore,
		logger:    log.With(slog.String("component", "item_handler")),
	}
}

// List handles GET /items. Unfiltered and unpaginated.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /items. The authenticated actor becomes the owner;
// the like set starts empty.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleError(w, r, err)
		return
	}

	item, err := domain.NewItem(req.Name, req.ImageURL, domain.Weather(req.Weather), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.itemStore.Create(r.Context(), item); err != nil {
		HandleError(w, r, err)
		return
	}

	log.Debug("item created",
		slog.String("item_id", item.ID),
		slog.String("owner_id", userID))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// Like handles PUT /items/{itemId}/likes. Adding an existing like is a
// no-op; the actor ends up in the like set exactly once.
func (h *ItemHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	itemID, err := pathID(r, "itemId", "item ID")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	item, err := h.itemStore.AddLike(r.Context(), itemID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// Unlike handles DELETE /items/{itemId}/likes. Removing an absent like
// is a no-op, not an error.
func (h *ItemHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	itemID, err := pathID(r, "itemId", "item ID")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	item, err := h.itemStore.RemoveLike(r.Context(), itemID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// Delete handles DELETE /items/{itemId}. Only the owner may delete; the
// ownership check runs before any mutation, so a forbidden request never
// partially deletes.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := actorID(r)
	if !ok {
		HandleError(w, r, auth.ErrMissingToken)
		return
	}

	itemID, err := pathID(r, "itemId", "item ID")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	item, err := h.itemStore.GetByID(r.Context(), itemID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if item.OwnerID != userID {
		log.Debug("delete refused: actor is not the owner",
			slog.String("item_id", itemID),
			slog.String("owner_id", item.OwnerID),
			slog.String("actor_id", userID))
		HandleError(w, r, domain.ErrNotOwner)
		return
	}

	if err := h.itemStore.Delete(r.Context(), itemID); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Item deleted successfully"})
}
