package auth

import (
	"encoding/json"
	"log"
	"net/http"
)

// Handler holds the token-issuing HTTP handler.
type Handler struct {
	secret string
}

func NewHandler(secret string) *Handler {
	return &Handler{secret: secret}
}

// IssueToken signs whatever claims the login payload carries and
// returns them as a bearer token. POST /jwt.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	token, err := Issue(h.secret, claims)
	if err != nil {
		log.Printf("token sign error: %v", err)
		http.Error(w, `{"error":"failed to issue token"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
