package services

import (
	"context"
	"errors"

	"github.com/brecho/backend/internal/models"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrCodeTaken    = errors.New("item code already in use")
)

// InventoryService is the item repository contract. Two implementations
// exist behind it: a JSON-file-backed local store and a Mongo-backed
// remote store. Every method either completes fully or returns an error
// with no partial state applied; there is no automatic retry.
//
// List and ListAvailable return items newest-created first. MarkSold
// with nil sale is the simple status toggle; with sale details it also
// records buyer and payment fields. Marking an item that is already in
// the target state is a no-op and returns the item unchanged.
type InventoryService interface {
	List(ctx context.Context) ([]models.ClothingItem, error)
	ListAvailable(ctx context.Context) ([]models.ClothingItem, error)
	GetByID(ctx context.Context, id string) (*models.ClothingItem, error)
	GetByCode(ctx context.Context, code string) (*models.ClothingItem, error)
	Create(ctx context.Context, req *models.CreateItemRequest) (*models.ClothingItem, error)
	Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.ClothingItem, error)
	Delete(ctx context.Context, id string) error
	MarkSold(ctx context.Context, id string, sale *models.RecordSaleRequest) (*models.ClothingItem, error)
	MarkAvailable(ctx context.Context, id string) (*models.ClothingItem, error)
}
