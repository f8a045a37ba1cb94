package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brecho/backend/internal/models"
	"github.com/brecho/backend/internal/services"
)

type ImageHandler struct {
	images    services.ImageStore
	maxSizeMB int64
}

func NewImageHandler(images services.ImageStore, maxSizeMB int64) *ImageHandler {
	return &ImageHandler{
		images:    images,
		maxSizeMB: maxSizeMB,
	}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the body with some slack over the image limit so oversized
	// files get the precise size error below instead of a parse failure.
	maxBytes := h.maxSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes*2)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No image file provided"))
		return
	}
	defer file.Close()

	// Both checks are local; a rejected file never reaches storage.
	contentType := header.Header.Get("Content-Type")
	if err := services.ValidateUpload(contentType, header.Size); err != nil {
		switch err {
		case services.ErrImageTooLarge:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Image must be 5 MB or smaller"))
		case services.ErrInvalidImageType:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image type. Allowed: JPEG, PNG, GIF, WebP"))
		default:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image"))
		}
		return
	}

	response, err := h.images.Save(r.Context(), header.Filename, contentType, file)
	if err != nil {
		log.Printf("[Upload] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upload image"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(response))
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageId")

	if err := h.images.Delete(r.Context(), imageID); err != nil {
		if err == services.ErrImageNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Image not found"))
			return
		}
		log.Printf("[DeleteImage] key=%s error: %v", imageID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete image"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Image deleted successfully"}))
}
