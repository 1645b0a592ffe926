package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenEndpoint(t *testing.T) {
	h := NewHandler(testSecret)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	claims, err := Verify(testSecret, resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestIssueTokenRejectsBadBody(t *testing.T) {
	h := NewHandler(testSecret)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	h.IssueToken(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
