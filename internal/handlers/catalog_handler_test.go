package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/services"
)

func newCatalogRouter(t *testing.T, contactPhone string) (*chi.Mux, services.InventoryService) {
	t.Helper()

	svc, err := services.NewJSONInventoryService(t.TempDir())
	require.NoError(t, err)
	images, err := services.NewLocalImageStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	h := NewCatalogHandler(svc, images, contactPhone)
	r := chi.NewRouter()
	r.Get("/api/catalog", h.ListItems)
	r.Get("/api/catalog/{code}", h.GetItemByCode)
	return r, svc
}

func TestCatalogListsOnlyAvailableItems(t *testing.T) {
	r, svc := newCatalogRouter(t, "+5511987654321")

	seedItem(t, svc, "Blusa Floral Rosa", "blusa")
	sold := seedItem(t, svc, "Vestido Midi", "vestido")
	_, err := svc.MarkSold(context.Background(), sold.ID, nil)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Blusa Floral Rosa", resp.Data[0].Name)
	assert.Contains(t, resp.Data[0].ContactURL, "https://wa.me/5511987654321")
	assert.Contains(t, resp.Data[0].ContactURL, resp.Data[0].Code)
}

func TestCatalogSearchAndCategoryFilter(t *testing.T) {
	r, svc := newCatalogRouter(t, "")

	seedItem(t, svc, "Blusa Floral Rosa", "blusa")
	seedItem(t, svc, "Calça Jeans", "calca")

	rec := doJSON(t, r, http.MethodGet, "/api/catalog?q=floral", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Blusa Floral Rosa", resp.Data[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/api/catalog?category=calca", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Calça Jeans", resp.Data[0].Name)
}

func TestCatalogOmitsContactLinkWithoutPhone(t *testing.T) {
	r, svc := newCatalogRouter(t, "")

	seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodGet, "/api/catalog", nil)

	var resp struct {
		Data []CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Empty(t, resp.Data[0].ContactURL)
}

func TestCatalogGetByCode(t *testing.T) {
	r, svc := newCatalogRouter(t, "+5511987654321")

	item := seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodGet, "/api/catalog/"+item.Code, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, item.ID, resp.Data.ID)
	assert.NotEmpty(t, resp.Data.ContactURL)
}

func TestCatalogHidesSoldItemByCode(t *testing.T) {
	r, svc := newCatalogRouter(t, "")

	item := seedItem(t, svc, "Blusa", "blusa")
	_, err := svc.MarkSold(context.Background(), item.ID, nil)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/catalog/"+item.Code, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/catalog/ROU999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogResolvesImageURL(t *testing.T) {
	r, svc := newCatalogRouter(t, "")

	item := seedItem(t, svc, "Blusa", "blusa")
	ref := "abc123.jpg"
	_, err := svc.Update(context.Background(), item.ID, &models.UpdateItemRequest{ImageURL: &ref})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/catalog/"+item.Code, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/uploads/abc123.jpg", resp.Data.ImageURL)
}
