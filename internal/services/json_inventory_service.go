package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brecho/backend/internal/itemcode"
	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/storage"
)

// JSONInventoryService keeps the whole collection in memory, newest
// first, and rewrites the backing JSON file on every mutation. The file
// is only the durability layer; reads never touch disk.
type JSONInventoryService struct {
	mu    sync.RWMutex
	store *storage.JSONStore
	items []models.ClothingItem
}

func NewJSONInventoryService(dataDir string) (*JSONInventoryService, error) {
	store, err := storage.NewJSONStore(dataDir, "clothing_items.json")
	if err != nil {
		return nil, err
	}

	s := &JSONInventoryService{store: store}
	if err := store.Load(&s.items); err != nil {
		return nil, err
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].CreatedAt.After(s.items[j].CreatedAt)
	})
	return s, nil
}

func (s *JSONInventoryService) List(ctx context.Context) ([]models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ClothingItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *JSONInventoryService) ListAvailable(ctx context.Context) ([]models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ClothingItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Status == models.StatusAvailable {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *JSONInventoryService) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			itemCopy := item
			return &itemCopy, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *JSONInventoryService) GetByCode(ctx context.Context, code string) (*models.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Code == code {
			itemCopy := item
			return &itemCopy, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *JSONInventoryService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.TrimSpace(req.Code)
	now := time.Now().UTC()

	if code != "" {
		if s.codeExists(code) {
			return nil, ErrCodeTaken
		}
	} else {
		code = itemcode.GenerateAt(now)
		// Time-derived codes can collide across restarts; walk forward
		// until a free one is found.
		for attempt := 1; s.codeExists(code); attempt++ {
			code = itemcode.GenerateAt(now.Add(time.Duration(attempt) * time.Millisecond))
		}
	}

	item := models.ClothingItem{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        req.Name,
		Category:    req.Category,
		Size:        req.Size,
		Color:       req.Color,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      models.StatusAvailable,
		CreatedAt:   now,
	}

	// Insert at front (newest first). The in-memory slice is only
	// replaced once the file write succeeds.
	next := make([]models.ClothingItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	if err := s.store.Save(next); err != nil {
		return nil, err
	}
	s.items = next

	return &item, nil
}

func (s *JSONInventoryService) Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	item := s.items[idx]
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	return s.replaceAt(idx, item)
}

func (s *JSONInventoryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}

	next := make([]models.ClothingItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.store.Save(next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *JSONInventoryService) MarkSold(ctx context.Context, id string, sale *models.RecordSaleRequest) (*models.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	item := s.items[idx]
	if item.Status == models.StatusSold {
		return &item, nil
	}

	now := time.Now().UTC()
	item.Status = models.StatusSold
	item.SoldAt = &now
	if sale != nil && sale.HasDetails() {
		item.BuyerName = sale.BuyerName
		item.PaymentMethod = sale.PaymentMethod
		item.PaymentStatus = sale.PaymentStatus
		if item.PaymentStatus == "" {
			item.PaymentStatus = models.PaymentStatusPending
		}
	}

	return s.replaceAt(idx, item)
}

func (s *JSONInventoryService) MarkAvailable(ctx context.Context, id string) (*models.ClothingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	item := s.items[idx]
	if item.Status == models.StatusAvailable {
		return &item, nil
	}

	item.Status = models.StatusAvailable
	item.SoldAt = nil
	item.BuyerName = ""
	item.PaymentMethod = ""
	item.PaymentStatus = ""

	return s.replaceAt(idx, item)
}

// replaceAt persists the collection with item swapped in at idx, then
// applies it in memory. Callers hold the write lock.
func (s *JSONInventoryService) replaceAt(idx int, item models.ClothingItem) (*models.ClothingItem, error) {
	next := make([]models.ClothingItem, len(s.items))
	copy(next, s.items)
	next[idx] = item

	if err := s.store.Save(next); err != nil {
		return nil, err
	}
	s.items = next
	return &item, nil
}

func (s *JSONInventoryService) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONInventoryService) codeExists(code string) bool {
	for _, item := range s.items {
		if item.Code == code {
			return true
		}
	}
	return false
}
