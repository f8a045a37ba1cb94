package services

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brecho/backend/internal/itemcode"
	"github.com/brecho/backend/internal/models"
)

// MongoInventoryService is the remote-store implementation of
// InventoryService.
type MongoInventoryService struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

type mongoItemDoc struct {
	ID            string     `bson:"_id"`
	Code          string     `bson:"code"`
	Name          string     `bson:"name"`
	Category      string     `bson:"category"`
	Size          string     `bson:"size"`
	Color         string     `bson:"color"`
	Price         float64    `bson:"price"`
	Description   string     `bson:"description,omitempty"`
	ImageURL      string     `bson:"image_url,omitempty"`
	Status        string     `bson:"status"`
	CreatedAt     time.Time  `bson:"created_at"`
	SoldAt        *time.Time `bson:"sold_at,omitempty"`
	BuyerName     string     `bson:"buyer_name,omitempty"`
	PaymentMethod string     `bson:"payment_method,omitempty"`
	PaymentStatus string     `bson:"payment_status,omitempty"`
}

func NewMongoInventoryService(ctx context.Context, mongoURI, dbName string) (*MongoInventoryService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless
	// TLS 1.2 is forced.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	coll := db.Collection("clothing_items")

	svc := &MongoInventoryService{
		client: client,
		db:     db,
		coll:   coll,
	}

	// The unique index on code is what makes time-derived codes safe
	// across restarts. The rest are best-effort.
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s", dbName)
	return svc, nil
}

func (s *MongoInventoryService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func itemDocToModel(d mongoItemDoc) *models.ClothingItem {
	return &models.ClothingItem{
		ID:            d.ID,
		Code:          d.Code,
		Name:          d.Name,
		Category:      d.Category,
		Size:          d.Size,
		Color:         d.Color,
		Price:         d.Price,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		SoldAt:        d.SoldAt,
		BuyerName:     d.BuyerName,
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: d.PaymentStatus,
	}
}

func (s *MongoInventoryService) List(ctx context.Context) ([]models.ClothingItem, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoInventoryService) ListAvailable(ctx context.Context) ([]models.ClothingItem, error) {
	return s.find(ctx, bson.M{"status": models.StatusAvailable})
}

func (s *MongoInventoryService) find(ctx context.Context, filter bson.M) ([]models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.coll.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]models.ClothingItem, 0)
	for cur.Next(ctx) {
		var d mongoItemDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		items = append(items, *itemDocToModel(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoInventoryService) GetByID(ctx context.Context, id string) (*models.ClothingItem, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoInventoryService) GetByCode(ctx context.Context, code string) (*models.ClothingItem, error) {
	return s.findOne(ctx, bson.M{"code": code})
}

func (s *MongoInventoryService) findOne(ctx context.Context, filter bson.M) (*models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var d mongoItemDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return itemDocToModel(d), nil
}

func (s *MongoInventoryService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	generated := req.Code == ""
	code := req.Code
	if generated {
		code = itemcode.GenerateAt(now)
	}

	doc := mongoItemDoc{
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

	// The unique index rejects duplicate codes. A seller-provided code
	// surfaces the conflict; a generated one is retried on the next
	// millisecond value.
	for attempt := 1; ; attempt++ {
		_, err := s.coll.InsertOne(ctx, doc)
		if err == nil {
			return itemDocToModel(doc), nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		if !generated || attempt > 5 {
			return nil, ErrCodeTaken
		}
		doc.Code = itemcode.GenerateAt(now.Add(time.Duration(attempt) * time.Millisecond))
	}
}

func (s *MongoInventoryService) Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Size != nil {
		set["size"] = *req.Size
	}
	if req.Color != nil {
		set["color"] = *req.Color
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageURL != nil {
		set["image_url"] = *req.ImageURL
	}
	if len(set) == 0 {
		return s.findOne(ctx, bson.M{"_id": id})
	}

	res := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoItemDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return itemDocToModel(updated), nil
}

func (s *MongoInventoryService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoInventoryService) MarkSold(ctx context.Context, id string, sale *models.RecordSaleRequest) (*models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"status":  models.StatusSold,
		"sold_at": now,
	}
	if sale != nil && sale.HasDetails() {
		set["buyer_name"] = sale.BuyerName
		set["payment_method"] = sale.PaymentMethod
		if sale.PaymentStatus != "" {
			set["payment_status"] = sale.PaymentStatus
		} else {
			set["payment_status"] = models.PaymentStatusPending
		}
	}

	// Filter on the current status so marking an already-sold item is a
	// no-op rather than a re-stamp of sold_at.
	return s.transition(ctx, id, models.StatusAvailable, bson.M{"$set": set})
}

func (s *MongoInventoryService) MarkAvailable(ctx context.Context, id string) (*models.ClothingItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"status": models.StatusAvailable},
		"$unset": bson.M{
			"sold_at":        "",
			"buyer_name":     "",
			"payment_method": "",
			"payment_status": "",
		},
	}
	return s.transition(ctx, id, models.StatusSold, update)
}

// transition applies update to the item only when it is currently in
// fromStatus. When the filter misses, the item is either gone (not
// found) or already in the target state (returned unchanged).
func (s *MongoInventoryService) transition(ctx context.Context, id, fromStatus string, update bson.M) (*models.ClothingItem, error) {
	res := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": fromStatus},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoItemDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return s.findOne(ctx, bson.M{"_id": id})
		}
		return nil, err
	}
	return itemDocToModel(updated), nil
}
