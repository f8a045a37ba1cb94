package models

import (
	"strings"
	"time"
)

// Item statuses.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// Payment statuses for recorded sales.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// ClothingItem is a single piece tracked in the inventory.
// Sale fields (sold_at, buyer_name, payment_method, payment_status) are
// only present while the item is sold.
type ClothingItem struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Size          string     `json:"size"`
	Color         string     `json:"color"`
	Price         float64    `json:"price"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	SoldAt        *time.Time `json:"sold_at,omitempty"`
	BuyerName     string     `json:"buyer_name,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
}

// ClothingCategories is the fixed category set.
var ClothingCategories = []string{
	"blusa",
	"calca",
	"vestido",
	"saia",
	"jaqueta",
	"acessorio",
	"calcado",
	"outros",
}

// ClothingSizes is the fixed size set.
var ClothingSizes = []string{"PP", "P", "M", "G", "GG", "XG", "Único"}

// PaymentMethods is the fixed payment method set.
var PaymentMethods = []string{
	"dinheiro",
	"pix",
	"cartao_credito",
	"cartao_debito",
	"transferencia",
	"outros",
}

func IsValidCategory(c string) bool { return contains(ClothingCategories, c) }

func IsValidSize(s string) bool { return contains(ClothingSizes, s) }

func IsValidPaymentMethod(m string) bool { return contains(PaymentMethods, m) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	// Code is optional; the server generates one when absent. Sellers may
	// pre-fetch a code and submit it unchanged, or ask for a new one.
	Code string `json:"code"`
}

func (r *CreateItemRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Item name is required"
	}
	if r.Category == "" {
		errors["category"] = "Category is required"
	} else if !IsValidCategory(r.Category) {
		errors["category"] = "Unknown category"
	}
	if r.Size == "" {
		errors["size"] = "Size is required"
	} else if !IsValidSize(r.Size) {
		errors["size"] = "Unknown size"
	}
	if strings.TrimSpace(r.Color) == "" {
		errors["color"] = "Color is required"
	}
	if r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}

	return errors
}

// UpdateItemRequest carries a partial update: nil fields are left untouched.
// Status transitions go through the dedicated sold/available endpoints, so
// status is not updatable here.
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Size        *string  `json:"size"`
	Color       *string  `json:"color"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

func (r *UpdateItemRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors["name"] = "Item name cannot be empty"
	}
	if r.Category != nil && !IsValidCategory(*r.Category) {
		errors["category"] = "Unknown category"
	}
	if r.Size != nil && !IsValidSize(*r.Size) {
		errors["size"] = "Unknown size"
	}
	if r.Color != nil && strings.TrimSpace(*r.Color) == "" {
		errors["color"] = "Color cannot be empty"
	}
	if r.Price != nil && *r.Price < 0 {
		errors["price"] = "Price cannot be negative"
	}

	return errors
}

// RecordSaleRequest holds the sale details for marking an item sold.
// An empty body (no buyer, no method) is the simple toggle used by the
// read-only flow; once a buyer name or payment method is given, both
// become mandatory.
type RecordSaleRequest struct {
	BuyerName     string `json:"buyer_name"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
}

// HasDetails reports whether the request carries sale details (as opposed
// to a plain status toggle).
func (r *RecordSaleRequest) HasDetails() bool {
	return strings.TrimSpace(r.BuyerName) != "" ||
		strings.TrimSpace(r.PaymentMethod) != "" ||
		r.PaymentStatus != ""
}

func (r *RecordSaleRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.BuyerName) == "" {
		errors["buyer_name"] = "Buyer name is required"
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		errors["payment_method"] = "Payment method is required"
	} else if !IsValidPaymentMethod(r.PaymentMethod) {
		errors["payment_method"] = "Unknown payment method"
	}
	if r.PaymentStatus != "" &&
		r.PaymentStatus != PaymentStatusPaid &&
		r.PaymentStatus != PaymentStatusPending {
		errors["payment_status"] = "Payment status must be paid or pending"
	}

	return errors
}
