package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brecho/backend/internal/models"
)

func TestContactLink(t *testing.T) {
	item := models.ClothingItem{Name: "Blusa Floral Rosa", Code: "ROU123456"}

	link := ContactLink("+55 11 98765-4321", item)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511987654321?text="), link)
	assert.Contains(t, link, "ROU123456")
}

func TestContactLinkWithoutPhone(t *testing.T) {
	assert.Empty(t, ContactLink("", models.ClothingItem{Code: "ROU123456"}))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL("/uploads", ""))
	assert.Equal(t, "https://cdn.example.com/a.jpg", ImageURL("/uploads", "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "/uploads/a.jpg", ImageURL("/uploads", "a.jpg"))
	assert.Equal(t, "/uploads/a.jpg", ImageURL("/uploads/", "a.jpg"))
	// A key that merely starts with "http" is still a key.
	assert.Equal(t, "/uploads/httpcap.jpg", ImageURL("/uploads", "httpcap.jpg"))
}
