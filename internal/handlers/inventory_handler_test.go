package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brecho/backend/internal/catalog"
	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/services"
)

func newInventoryRouter(t *testing.T) (*chi.Mux, services.InventoryService) {
	t.Helper()

	svc, err := services.NewJSONInventoryService(t.TempDir())
	require.NoError(t, err)

	h := NewInventoryHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Post("/", h.CreateItem)
		r.Get("/stats", h.Stats)
		r.Get("/code", h.NewCode)
		r.Get("/{itemId}", h.GetItem)
		r.Put("/{itemId}", h.UpdateItem)
		r.Delete("/{itemId}", h.DeleteItem)
		r.Post("/{itemId}/sold", h.MarkSold)
		r.Post("/{itemId}/available", h.MarkAvailable)
	})
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeItem(t *testing.T, rec *httptest.ResponseRecorder) models.ClothingItem {
	t.Helper()

	var resp struct {
		Success bool                `json:"success"`
		Data    models.ClothingItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, rec.Body.String())
	return resp.Data
}

func seedItem(t *testing.T, svc services.InventoryService, name, category string) *models.ClothingItem {
	t.Helper()

	item, err := svc.Create(context.Background(), &models.CreateItemRequest{
		Name: name, Category: category, Size: "M", Color: "Rosa", Price: 45,
	})
	require.NoError(t, err)
	return item
}

func TestCreateItemEndpoint(t *testing.T) {
	r, _ := newInventoryRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/items", models.CreateItemRequest{
		Name: "Blusa Floral Rosa", Category: "blusa", Size: "M", Color: "Rosa", Price: 45,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeItem(t, rec)
	assert.NotEmpty(t, item.ID)
	assert.NotEmpty(t, item.Code)
	assert.Equal(t, models.StatusAvailable, item.Status)
}

func TestCreateItemValidation(t *testing.T) {
	r, svc := newInventoryRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/items", models.CreateItemRequest{
		Name: "", Category: "chapeu", Size: "M", Color: "Rosa", Price: -1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "category")
	assert.Contains(t, resp.Errors, "price")

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items, "invalid request must not create anything")
}

func TestCreateItemDuplicateCode(t *testing.T) {
	r, _ := newInventoryRouter(t)

	first := doJSON(t, r, http.MethodPost, "/api/items", models.CreateItemRequest{
		Name: "Blusa", Category: "blusa", Size: "M", Color: "Rosa", Price: 45, Code: "ROU000001",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, r, http.MethodPost, "/api/items", models.CreateItemRequest{
		Name: "Saia", Category: "saia", Size: "P", Color: "Azul", Price: 30, Code: "ROU000001",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestListItemsWithFilters(t *testing.T) {
	r, svc := newInventoryRouter(t)

	seedItem(t, svc, "Blusa Floral Rosa", "blusa")
	seedItem(t, svc, "Calça Jeans", "calca")
	sold := seedItem(t, svc, "Vestido Midi", "vestido")
	_, err := svc.MarkSold(context.Background(), sold.ID, nil)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/items?category=calca", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.ClothingItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Calça Jeans", resp.Data[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/api/items?status=sold", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Vestido Midi", resp.Data[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/api/items", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3, "seller view includes sold items")
}

func TestGetItemNotFound(t *testing.T) {
	r, _ := newInventoryRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateItemEndpoint(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodPut, "/api/items/"+item.ID, map[string]interface{}{
		"price": 59.90,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeItem(t, rec)
	assert.InDelta(t, 59.90, updated.Price, 0.001)
	assert.Equal(t, "Blusa", updated.Name)
}

func TestMarkSoldEndpointPlainToggle(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodPost, "/api/items/"+item.ID+"/sold", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sold := decodeItem(t, rec)
	assert.Equal(t, models.StatusSold, sold.Status)
	assert.NotNil(t, sold.SoldAt)
	assert.Empty(t, sold.BuyerName)
}

func TestMarkSoldEndpointWithDetails(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodPost, "/api/items/"+item.ID+"/sold", models.RecordSaleRequest{
		BuyerName: "Ana", PaymentMethod: "pix", PaymentStatus: models.PaymentStatusPaid,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sold := decodeItem(t, rec)
	assert.Equal(t, "Ana", sold.BuyerName)
	assert.Equal(t, "pix", sold.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPaid, sold.PaymentStatus)
}

func TestMarkSoldEndpointRejectsPartialDetails(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")

	// buyer_name without payment_method fails validation before the
	// store is touched, so the item must stay available.
	rec := doJSON(t, r, http.MethodPost, "/api/items/"+item.ID+"/sold", map[string]string{
		"buyer_name": "Ana",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	current, err := svc.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, current.Status)
	assert.Nil(t, current.SoldAt)
}

func TestMarkAvailableEndpoint(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")
	_, err := svc.MarkSold(context.Background(), item.ID, &models.RecordSaleRequest{
		BuyerName: "Ana", PaymentMethod: "pix",
	})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/api/items/"+item.ID+"/available", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	back := decodeItem(t, rec)
	assert.Equal(t, models.StatusAvailable, back.Status)
	assert.Nil(t, back.SoldAt)
	assert.Empty(t, back.BuyerName)
	assert.Empty(t, back.PaymentMethod)
}

func TestDeleteItemEndpoint(t *testing.T) {
	r, svc := newInventoryRouter(t)

	item := seedItem(t, svc, "Blusa", "blusa")

	rec := doJSON(t, r, http.MethodDelete, "/api/items/"+item.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/items/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	r, svc := newInventoryRouter(t)

	seedItem(t, svc, "Blusa", "blusa")
	sold := seedItem(t, svc, "Calça", "calca")
	_, err := svc.MarkSold(context.Background(), sold.ID, nil)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/items/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data catalog.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Available)
	assert.Equal(t, 1, resp.Data.Sold)
	assert.InDelta(t, 45, resp.Data.AvailableValue, 0.001)
	assert.InDelta(t, 45, resp.Data.SoldValue, 0.001)
}

func TestNewCodeEndpoint(t *testing.T) {
	r, _ := newInventoryRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/items/code", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	code := resp.Data["code"]
	assert.True(t, strings.HasPrefix(code, "ROU"), code)
	assert.Len(t, code, 9)
}
