package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homequest-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginSeedAdmin(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/login/", "", models.LoginRequest{
		Phone:    SeedAdminPhone,
		Password: SeedAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginSeedAdmin(t *testing.T) {
	router := NewServer("test-secret").Router()
	token := loginSeedAdmin(t, router)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	router := NewServer("test-secret").Router()
	rec := doJSON(t, router, http.MethodPost, "/auth/login/", "", models.LoginRequest{
		Phone:    SeedAdminPhone,
		Password: "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := NewServer("test-secret").Router()
	rec := doJSON(t, router, http.MethodGet, "/properties/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/properties/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokensAreSignatureBound(t *testing.T) {
	routerA := NewServer("secret-a").Router()
	routerB := NewServer("secret-b").Router()

	token := loginSeedAdmin(t, routerA)
	rec := doJSON(t, routerB, http.MethodGet, "/properties/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a token signed under a different secret is rejected")
}

func TestPropertyListIsPaginated(t *testing.T) {
	router := NewServer("test-secret").Router()
	token := loginSeedAdmin(t, router)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/properties/", token, models.PropertyInput{
			Title: "Flat", Price: 100, City: "Kathmandu",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/properties/?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.Page[models.Property]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
}

func TestAgentListServesLegacyShape(t *testing.T) {
	router := NewServer("test-secret").Router()
	token := loginSeedAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/agents/", token, models.AgentInput{FullName: "Sita", Phone: "9822222222"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/agents/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "results")
	assert.Contains(t, raw, "count")
	assert.NotContains(t, raw, "items")
}

func TestPageConflictOnDuplicateName(t *testing.T) {
	router := NewServer("test-secret").Router()
	token := loginSeedAdmin(t, router)

	body := map[string]string{"unique_name": "about-us", "title": "About", "content": "hi"}
	rec := doJSON(t, router, http.MethodPost, "/pages/", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/pages/", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
