package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/brecho/backend/internal/models"
)

// ContactLink builds the WhatsApp message-intent URL for an item: the
// seller's number with a pre-filled text quoting the item's name and
// code. Returns "" when no phone is configured.
func ContactLink(phone string, item models.ClothingItem) string {
	digits := keepDigits(phone)
	if digits == "" {
		return ""
	}
	msg := fmt.Sprintf("Olá! Tenho interesse na peça %s (código %s).", item.Name, item.Code)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(msg)
}

// ImageURL resolves a stored image reference for display: absolute URLs
// pass through, storage-relative keys are joined to the public base.
func ImageURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + ref
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
