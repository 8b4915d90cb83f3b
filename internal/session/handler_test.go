package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newTestSession(t, newBlobs(t), nil)
	r := chi.NewRouter()
	NewHandler(svc).Routes(r)
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandlerLogin(t *testing.T) {
	r := newTestRouter(t)

	rr := postJSON(t, r, "/login", `{"email":"admin@example.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsAuthenticated)
	assert.True(t, resp.IsAdmin)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Admin", resp.User.Name)
}

func TestHandlerLoginRejected(t *testing.T) {
	r := newTestRouter(t)

	rr := postJSON(t, r, "/login", `{"email":"admin@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandlerRegisterConflict(t *testing.T) {
	r := newTestRouter(t)

	rr := postJSON(t, r, "/register", `{"email":"user@example.com","password":"x","name":"X"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHandlerSessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	rr := postJSON(t, r, "/register", `{"email":"new@example.com","password":"x","name":"New"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	get := httptest.NewRecorder()
	r.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &resp))
	assert.True(t, resp.IsAuthenticated)
	assert.False(t, resp.IsAdmin)

	rr = postJSON(t, r, "/logout", "")
	require.Equal(t, http.StatusOK, rr.Code)

	get = httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/session", nil))
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &resp))
	assert.False(t, resp.IsAuthenticated)
	assert.Nil(t, resp.User)
}
