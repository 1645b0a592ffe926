package fundraise

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/peerfund/server/internal/models"
)

// fakeStore is an in-memory fundraiseApplications collection.
type fakeStore struct {
	apps []*models.FundraiseApplication
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*models.FundraiseApplication, error) {
	for _, a := range s.apps {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Insert(_ context.Context, app *models.FundraiseApplication) (string, error) {
	app.ID = primitive.NewObjectID()
	s.apps = append(s.apps, app)
	return app.ID.Hex(), nil
}

func (s *fakeStore) List(_ context.Context) ([]models.FundraiseApplication, error) {
	var out []models.FundraiseApplication
	for _, a := range s.apps {
		out = append(out, *a)
	}
	return out, nil
}

func postApp(h *Handler, app models.FundraiseApplication) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(app)
	req := httptest.NewRequest("POST", "/fundraise", &buf)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateApplicationDuplicateSoftReject(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)

	rec := postApp(h, models.FundraiseApplication{Email: "alice@example.com", Title: "Well"})
	require.Equal(t, http.StatusOK, rec.Code)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.NotEmpty(t, first["insertedId"])

	rec = postApp(h, models.FundraiseApplication{Email: "alice@example.com", Title: "Another"})
	require.Equal(t, http.StatusOK, rec.Code)

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Nil(t, second["insertedId"])
	assert.Len(t, store.apps, 1)
}

func TestListApplications(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(store)

	postApp(h, models.FundraiseApplication{Email: "a@example.com", Title: "Well"})
	postApp(h, models.FundraiseApplication{Email: "b@example.com", Title: "School"})

	req := httptest.NewRequest("GET", "/fundraise", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var apps []models.FundraiseApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)
}

func TestListApplicationsEmpty(t *testing.T) {
	h := NewHandler(&fakeStore{})

	req := httptest.NewRequest("GET", "/fundraise", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
