package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestBearerAuth_MissingHeader(t *testing.T) {
	s := newTestServer(t, &fakeAccountAPI{})

	rec := doRequest(s, http.MethodGet, "/api/users/u1", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	s := newTestServer(t, &fakeAccountAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/u1", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_ExpiredToken(t *testing.T) {
	s := newTestServer(t, &fakeAccountAPI{getRes: sampleAccount("u1", models.RoleUser)})

	tok := issueTestToken(t, "u1", models.RoleUser, -time.Minute)
	rec := doRequest(s, http.MethodGet, "/api/users/u1", tok, "")

	// expired must surface as expired, not as a policy denial
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestBearerAuth_GarbageToken(t *testing.T) {
	s := newTestServer(t, &fakeAccountAPI{})

	rec := doRequest(s, http.MethodGet, "/api/users/u1", "not.a.jwt", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestBearerAuth_ValidTokenPassesCaller(t *testing.T) {
	api := &fakeAccountAPI{getRes: sampleAccount("u1", models.RoleUser)}
	s := newTestServer(t, api)

	tok := issueTestToken(t, "u1", models.RoleUser, time.Hour)
	rec := doRequest(s, http.MethodGet, "/api/users/u1", tok, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
