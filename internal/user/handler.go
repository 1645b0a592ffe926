package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/peerfund/server/internal/middleware"
	"github.com/peerfund/server/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (string, error)
	List(ctx context.Context) ([]models.User, error)
	PromoteAdmin(ctx context.Context, id string) (matched, modified int64, err error)
	UpdateFields(ctx context.Context, email string, fields bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ExtraInfoStore defines the interface for supplemental profile data.
type ExtraInfoStore interface {
	Get(ctx context.Context, userID string) (bson.M, error)
	Upsert(ctx context.Context, userID string, fields bson.M) error
}

// Handler holds user-related HTTP handlers.
type Handler struct {
	users UserStore
	extra ExtraInfoStore
}

func NewHandler(users UserStore, extra ExtraInfoStore) *Handler {
	return &Handler{users: users, extra: extra}
}

// requireSelf enforces the ownership rule: the addressed email must
// match the caller's token identity. Writes a 403 and returns false on
// mismatch.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, email string) bool {
	if email == "" || email != middleware.EmailFrom(r.Context()) {
		http.Error(w, `{"message":"forbidden access"}`, http.StatusForbidden)
		return false
	}
	return true
}

// GetByEmail returns the caller's own user record. GET /users/{email}.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.requireSelf(w, r, email) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create registers a user unless one already exists under the same
// email. The duplicate case is a soft success carrying a null insert
// marker, not an error. POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), u.Email)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "User already exists",
			"insertedId": nil,
		})
		return
	}

	id, err := h.users.Insert(r.Context(), &u)
	if err != nil {
		log.Printf("insert user error: %v", err)
		http.Error(w, `{"error":"failed to create user"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"insertedId": id})
}

// IsAdmin reports whether the caller's own record carries the admin
// role. GET /users/admin/{email}.
func (h *Handler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.requireSelf(w, r, email) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": user.IsAdmin()})
}

// PromoteAdmin grants the admin role to the addressed user.
// PATCH /users/admin/{id}.
func (h *Handler) PromoteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	matched, modified, err := h.users.PromoteAdmin(r.Context(), id)
	if err != nil {
		log.Printf("promote user error: %v", err)
		http.Error(w, `{"error":"failed to update user"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

// List returns every registered user. GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Delete removes a user by id, 404 when the id resolves to nothing.
// DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"failed to delete user"}`, http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "User not found",
		})
		return
	}

	deleted, err := h.users.Delete(r.Context(), id)
	if err != nil {
		log.Printf("delete user error: %v", err)
		http.Error(w, `{"error":"failed to delete user"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

// requireOwnID resolves the caller's user record and checks it matches
// the id addressed in the path.
func (h *Handler) requireOwnID(w http.ResponseWriter, r *http.Request, id string) bool {
	email := middleware.EmailFrom(r.Context())
	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return false
	}
	if user == nil || user.ID.Hex() != id {
		http.Error(w, `{"message":"forbidden access"}`, http.StatusForbidden)
		return false
	}
	return true
}

// GetExtraInfo returns the caller's supplemental profile document, or
// an empty object when none is stored. GET /userExtraInfo/{id}.
func (h *Handler) GetExtraInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.requireOwnID(w, r, id) {
		return
	}

	info, err := h.extra.Get(r.Context(), id)
	if err != nil {
		log.Printf("get extra info error: %v", err)
		http.Error(w, `{"error":"failed to fetch user extra info"}`, http.StatusInternalServerError)
		return
	}
	if info == nil {
		info = bson.M{}
	}
	writeJSON(w, http.StatusOK, info)
}

// UpsertExtraInfo creates or replaces the caller's supplemental profile
// document. POST /userExtraInfo/{id}.
func (h *Handler) UpsertExtraInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.requireOwnID(w, r, id) {
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := h.extra.Upsert(r.Context(), id, fields); err != nil {
		log.Printf("upsert extra info error: %v", err)
		http.Error(w, `{"error":"failed to save user extra info"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateProfile applies arbitrary profile fields to the caller's own
// record. PATCH /users/{email}.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.requireSelf(w, r, email) {
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	delete(fields, "_id")
	delete(fields, "email")

	matched, modified, err := h.users.UpdateFields(r.Context(), email, fields)
	if err != nil {
		log.Printf("update profile error: %v", err)
		http.Error(w, `{"error":"failed to update user profile"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"matchedCount":  matched,
		"modifiedCount": modified,
		"message":       "Profile updated successfully",
	})
}

// GetImage returns the caller's stored profile image URL.
// GET /user-image/{email}.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.requireSelf(w, r, email) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("find user error: %v", err)
		http.Error(w, `{"error":"failed to fetch user image"}`, http.StatusInternalServerError)
		return
	}

	var imageURL interface{}
	if user != nil && user.Image != "" {
		imageURL = user.Image
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"imageUrl": imageURL})
}

// DeleteImage clears the caller's stored profile image URL.
// DELETE /user-image/{email}.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if !h.requireSelf(w, r, email) {
		return
	}

	matched, modified, err := h.users.UpdateFields(r.Context(), email, bson.M{"image": ""})
	if err != nil {
		log.Printf("remove image error: %v", err)
		http.Error(w, `{"error":"failed to remove profile image"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"matchedCount":  matched,
		"modifiedCount": modified,
		"message":       "Profile image removed successfully",
	})
}
