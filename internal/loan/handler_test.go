package loan

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/peerfund/server/internal/models"
)

// fakeLoanStore records inserted requests.
type fakeLoanStore struct {
	inserted []*models.LoanRequest
}

func (s *fakeLoanStore) Insert(_ context.Context, req *models.LoanRequest) (string, error) {
	s.inserted = append(s.inserted, req)
	return primitive.NewObjectID().Hex(), nil
}

func post(h *Handler, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest("POST", "/loans", &buf)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateLoanMissingAmount(t *testing.T) {
	store := &fakeLoanStore{}
	rec := post(NewHandler(store), map[string]interface{}{
		"purpose":       "x",
		"repaymentTime": 12,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestCreateLoanMissingPurpose(t *testing.T) {
	store := &fakeLoanStore{}
	rec := post(NewHandler(store), map[string]interface{}{
		"loanAmount":    100,
		"purpose":       "   ",
		"repaymentTime": 12,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestCreateLoan(t *testing.T) {
	store := &fakeLoanStore{}
	rec := post(NewHandler(store), map[string]interface{}{
		"loanAmount":    100,
		"purpose":       "roof repair",
		"repaymentTime": 12,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "Loan request submitted", resp["message"])

	require.Len(t, store.inserted, 1)
	doc := store.inserted[0]
	assert.Equal(t, float64(100), doc.LoanAmount)
	assert.Equal(t, "roof repair", doc.Purpose)
	assert.WithinDuration(t, time.Now(), doc.RequestedAt, 5*time.Second)
}

func TestCreateLoanCoercesNumericStrings(t *testing.T) {
	store := &fakeLoanStore{}
	rec := post(NewHandler(store), map[string]interface{}{
		"loanAmount":    "2500",
		"purpose":       "inventory",
		"repaymentTime": "6",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, float64(2500), store.inserted[0].LoanAmount)
	assert.Equal(t, float64(6), store.inserted[0].RepaymentTime)
}

func TestCreateLoanKeepsClientRequestedAt(t *testing.T) {
	store := &fakeLoanStore{}
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := post(NewHandler(store), map[string]interface{}{
		"loanAmount":    50,
		"purpose":       "seeds",
		"repaymentTime": 3,
		"requestedAt":   stamp.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.inserted, 1)
	assert.True(t, store.inserted[0].RequestedAt.Equal(stamp))
}
