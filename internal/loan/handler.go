package loan

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/peerfund/server/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Store defines the interface for loan request persistence.
type Store interface {
	Insert(ctx context.Context, req *models.LoanRequest) (string, error)
}

// Handler holds the loan request HTTP handler.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// createRequest keeps the numeric fields loose so that both JSON
// numbers and numeric strings are accepted, matching what submitting
// clients actually send.
type createRequest struct {
	LoanAmount    interface{} `json:"loanAmount"`
	Purpose       string      `json:"purpose"`
	RepaymentTime interface{} `json:"repaymentTime"`
	RequestedAt   string      `json:"requestedAt"`
}

// toNumber coerces a decoded JSON value to a float64. The second
// return is false when the value is absent or not numeric.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Create validates and stores a loan request. loanAmount, purpose and
// repaymentTime are all required; requestedAt defaults to submission
// time. POST /loans.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
		return
	}

	amount, okAmount := toNumber(req.LoanAmount)
	repayment, okRepayment := toNumber(req.RepaymentTime)
	purpose := strings.TrimSpace(req.Purpose)

	if !okAmount || amount <= 0 || purpose == "" || !okRepayment {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing required fields"})
		return
	}

	doc := &models.LoanRequest{
		LoanAmount:    amount,
		Purpose:       purpose,
		RepaymentTime: repayment,
	}
	// requestedAt may be supplied by the client; submission time is
	// used when it is absent or unparseable.
	if req.RequestedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.RequestedAt); err == nil {
			doc.RequestedAt = t
		}
	}
	if doc.RequestedAt.IsZero() {
		doc.RequestedAt = time.Now()
	}
	id, err := h.store.Insert(r.Context(), doc)
	if err != nil {
		log.Printf("insert loan request error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Loan request submitted",
		"id":      id,
	})
}
