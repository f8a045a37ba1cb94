package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brecho/backend/internal/catalog"
	"github.com/brecho/backend/internal/itemcode"
	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/services"
)

// InventoryHandler serves the seller area: item CRUD, lifecycle
// transitions and stats.
type InventoryHandler struct {
	inventory services.InventoryService
}

func NewInventoryHandler(inventory services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// ListItems returns the seller's full collection, newest first, filtered
// by the q/category/status query params (""/"all" disables a filter).
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		log.Printf("[ListItems] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list items"))
		return
	}

	query := r.URL.Query()
	filtered := catalog.FilterWithStatus(items, query.Get("q"), query.Get("category"), query.Get("status"))

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(filtered))
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.inventory.GetByID(r.Context(), itemID)
	if err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[GetItem] id=%s error: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get item"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(item))
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	item, err := h.inventory.Create(r.Context(), &req)
	if err != nil {
		if err == services.ErrCodeTaken {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Item code already in use"))
			return
		}
		log.Printf("[CreateItem] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create item"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(item))
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	item, err := h.inventory.Update(r.Context(), itemID, &req)
	if err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[UpdateItem] id=%s error: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update item"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(item))
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if err := h.inventory.Delete(r.Context(), itemID); err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[DeleteItem] id=%s error: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete item"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Item deleted successfully"}))
}

// MarkSold transitions an item to sold. With an empty body it is the
// simple toggle; with a body it records the sale details, which are
// validated before the store is touched.
func (h *InventoryHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var sale *models.RecordSaleRequest
	var req models.RecordSaleRequest
	switch err := json.NewDecoder(r.Body).Decode(&req); {
	case err == nil:
		if req.HasDetails() {
			if errors := req.Validate(); len(errors) > 0 {
				writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
				return
			}
			sale = &req
		}
	case errors.Is(err, io.EOF):
		// No body: plain toggle.
	default:
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	item, err := h.inventory.MarkSold(r.Context(), itemID, sale)
	if err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[MarkSold] id=%s error: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to mark item as sold"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(item))
}

func (h *InventoryHandler) MarkAvailable(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	item, err := h.inventory.MarkAvailable(r.Context(), itemID)
	if err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[MarkAvailable] id=%s error: %v", itemID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to mark item as available"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(item))
}

// Stats recomputes the inventory summary from the current collection.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		log.Printf("[Stats] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute stats"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(catalog.Aggregate(items)))
}

// NewCode hands the form a freshly generated item code so sellers can
// regenerate before saving.
func (h *InventoryHandler) NewCode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"code": itemcode.Generate()}))
}
