package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peerfund/server/internal/middleware"
)

// MaxFileSize caps uploaded images at 5 MiB.
const MaxFileSize = 5 << 20

// PublicPrefix is the URL path uploaded images are served under.
const PublicPrefix = "/uploads/profile-images/"

// fileField is the only multipart field read from the request.
const fileField = "image"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// FileStore defines the interface for file storage.
type FileStore interface {
	Save(name string, src io.Reader) (string, error)
	Remove(name string) error
}

// Handler accepts profile image uploads.
type Handler struct {
	files FileStore
}

func NewHandler(files FileStore) *Handler {
	return &Handler{files: files}
}

// ProfileImage stores a single image file and returns its public URL.
// The file is removed again if anything fails after it hit disk.
// POST /upload-profile-image.
func (h *Handler) ProfileImage(w http.ResponseWriter, r *http.Request) {
	// Bound the whole request body; form encoding overhead gets a
	// little slack on top of the file cap.
	r.Body = http.MaxBytesReader(w, r.Body, MaxFileSize+(512<<10))
	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "File size too large. Maximum 5MB allowed.",
		})
		return
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if header.Size > MaxFileSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "File size too large. Maximum 5MB allowed.",
		})
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Only image files are allowed"})
		return
	}

	name := fmt.Sprintf("profile-%d-%s%s",
		time.Now().UnixMilli(),
		uuid.New().String()[:8],
		filepath.Ext(header.Filename),
	)
	if _, err := h.files.Save(name, file); err != nil {
		log.Printf("save upload error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to upload image"})
		return
	}

	// The token must identify who the image belongs to. Without that
	// the stored file is an orphan, so undo the write before failing.
	if middleware.EmailFrom(r.Context()) == "" {
		h.files.Remove(name)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	imageURL := fmt.Sprintf("%s://%s%s%s", scheme(r), r.Host, PublicPrefix, name)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"imageUrl": imageURL,
		"message":  "Image uploaded successfully",
	})
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
