// Package itemcode generates the human-readable codes printed on tags
// and quoted by buyers when contacting the seller.
package itemcode

import (
	"fmt"
	"time"
)

const prefix = "ROU"

// Generate returns a fresh item code: a fixed prefix plus the last six
// digits of the current time in milliseconds, zero-padded. Codes are not
// globally unique; the item store guards against collisions at insert.
func Generate() string {
	return GenerateAt(time.Now())
}

// GenerateAt returns the code for a given instant.
func GenerateAt(t time.Time) string {
	return fmt.Sprintf("%s%06d", prefix, t.UnixMilli()%1000000)
}
