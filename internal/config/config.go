package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string

	// Auth. AuthMode selects "jwt" (local seller accounts) or "firebase"
	// (hosted auth, ID tokens verified server-side).
	AuthMode                string
	JWTSecret               string
	JWTExpiration           time.Duration
	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	// Item store backend: "json" (local file) or "mongo".
	StoreBackend string
	DataDir      string
	MongoURI     string
	MongoDB      string

	// Image store backend: "local" (disk, served under /uploads) or "gcs".
	ImageBackend       string
	UploadDir          string
	GCSBucket          string
	ImagePublicBaseURL string
	MaxUploadSizeMB    int64

	// ContactPhone is the seller's WhatsApp number used in catalog
	// contact links, digits only with country code.
	ContactPhone string
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),

		AuthMode:                getEnv("AUTH_MODE", "jwt"),
		JWTSecret:               getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:           24 * time.Hour,
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),

		StoreBackend: getEnv("STORE_BACKEND", "json"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "brecho"),

		ImageBackend:       getEnv("IMAGE_BACKEND", "local"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		ImagePublicBaseURL: getEnv("IMAGE_PUBLIC_BASE_URL", "/uploads"),
		MaxUploadSizeMB:    5,

		ContactPhone: getEnv("CONTACT_PHONE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
