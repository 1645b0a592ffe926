package fundraise

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/peerfund/server/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Store defines the interface for fundraise application persistence.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.FundraiseApplication, error)
	Insert(ctx context.Context, app *models.FundraiseApplication) (string, error)
	List(ctx context.Context) ([]models.FundraiseApplication, error)
}

// Handler holds fundraise application HTTP handlers.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Create accepts a campaign application, one per email. A repeat
// submission is a soft success with a null insert marker.
// POST /fundraise.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var app models.FundraiseApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	existing, err := h.store.FindByEmail(r.Context(), app.Email)
	if err != nil {
		log.Printf("find application error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Application already exists",
			"insertedId": nil,
		})
		return
	}

	id, err := h.store.Insert(r.Context(), &app)
	if err != nil {
		log.Printf("insert application error: %v", err)
		http.Error(w, `{"error":"failed to save application"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"insertedId": id})
}

// List returns every stored application. GET /fundraise.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("list applications error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if apps == nil {
		apps = []models.FundraiseApplication{}
	}
	writeJSON(w, http.StatusOK, apps)
}
