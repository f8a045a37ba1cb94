package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/brecho/backend/internal/config"
	"github.com/brecho/backend/internal/handlers"
	appMiddleware "github.com/brecho/backend/internal/middleware"
	"github.com/brecho/backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Item store: local JSON file by default, Mongo when configured.
	var inventory services.InventoryService
	switch cfg.StoreBackend {
	case "mongo":
		svc, err := services.NewMongoInventoryService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer svc.Close(context.Background())
		inventory = svc
	default:
		svc, err := services.NewJSONInventoryService(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open item store: %v", err)
		}
		inventory = svc
	}

	// Image store: local disk by default, GCS when configured.
	var images services.ImageStore
	switch cfg.ImageBackend {
	case "gcs":
		publicBase := cfg.ImagePublicBaseURL
		if publicBase == "/uploads" {
			// The local-serving default makes no sense for a bucket.
			publicBase = ""
		}
		store, err := services.NewGCSImageStore(ctx, cfg.GCSBucket, "", publicBase)
		if err != nil {
			log.Fatalf("Failed to init GCS image store: %v", err)
		}
		defer store.Close()
		images = store
	default:
		store, err := services.NewLocalImageStore(cfg.UploadDir, cfg.ImagePublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to init local image store: %v", err)
		}
		images = store
	}

	// Seller auth: local JWT accounts by default, hosted Firebase
	// verification when configured.
	var requireAuth func(http.Handler) http.Handler
	var authHandler *handlers.AuthHandler
	if cfg.AuthMode == "firebase" {
		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
		}
		requireAuth = appMiddleware.FirebaseAuth(authClient)
	} else {
		userService, err := services.NewUserService(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open user store: %v", err)
		}
		authHandler = handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
		requireAuth = appMiddleware.JWTAuth(cfg.JWTSecret)
	}

	inventoryHandler := handlers.NewInventoryHandler(inventory)
	catalogHandler := handlers.NewCatalogHandler(inventory, images, cfg.ContactPhone)
	imageHandler := handlers.NewImageHandler(images, cfg.MaxUploadSizeMB)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public buyer catalog.
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.ListItems)
			r.Get("/{code}", catalogHandler.GetItemByCode)
		})

		if authHandler != nil {
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		// Seller area.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", inventoryHandler.ListItems)
				r.Post("/", inventoryHandler.CreateItem)
				r.Get("/stats", inventoryHandler.Stats)
				r.Get("/code", inventoryHandler.NewCode)

				r.Route("/{itemId}", func(r chi.Router) {
					r.Get("/", inventoryHandler.GetItem)
					r.Put("/", inventoryHandler.UpdateItem)
					r.Delete("/", inventoryHandler.DeleteItem)
					r.Post("/sold", inventoryHandler.MarkSold)
					r.Post("/available", inventoryHandler.MarkAvailable)
				})
			})

			r.Post("/upload", imageHandler.Upload)
			r.Delete("/upload/{imageId}", imageHandler.Delete)

			if authHandler != nil {
				r.Get("/auth/me", authHandler.Me)
			}
		})
	})

	// Serve uploaded files when images live on local disk.
	if cfg.ImageBackend != "gcs" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	log.Printf("Brechó API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
