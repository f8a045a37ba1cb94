package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brecho/backend/internal/catalog"
	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/services"
)

// CatalogHandler serves the public, unauthenticated buyer view:
// available items only, with resolved image URLs and contact links.
type CatalogHandler struct {
	inventory    services.InventoryService
	images       services.ImageStore
	contactPhone string
}

func NewCatalogHandler(inventory services.InventoryService, images services.ImageStore, contactPhone string) *CatalogHandler {
	return &CatalogHandler{
		inventory:    inventory,
		images:       images,
		contactPhone: contactPhone,
	}
}

// CatalogItem is a ClothingItem dressed for the public catalog.
type CatalogItem struct {
	models.ClothingItem
	ContactURL string `json:"contact_url,omitempty"`
}

func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ListAvailable(r.Context())
	if err != nil {
		log.Printf("[Catalog] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load catalog"))
		return
	}

	query := r.URL.Query()
	filtered := catalog.Filter(items, query.Get("q"), query.Get("category"))

	out := make([]CatalogItem, 0, len(filtered))
	for _, item := range filtered {
		out = append(out, h.view(item))
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(out))
}

// GetItemByCode looks up a single available item by its printed code.
// Sold items are invisible to buyers.
func (h *CatalogHandler) GetItemByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	item, err := h.inventory.GetByCode(r.Context(), code)
	if err != nil {
		if err == services.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
			return
		}
		log.Printf("[Catalog] code=%s error: %v", code, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load item"))
		return
	}
	if item.Status != models.StatusAvailable {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Item not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.view(*item)))
}

func (h *CatalogHandler) view(item models.ClothingItem) CatalogItem {
	if item.ImageURL != "" {
		item.ImageURL = h.images.URL(item.ImageURL)
	}
	return CatalogItem{
		ClothingItem: item,
		ContactURL:   catalog.ContactLink(h.contactPhone, item),
	}
}
