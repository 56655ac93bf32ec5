package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/webstack-labs/user-auth-services/internal/config"
	"github.com/webstack-labs/user-auth-services/internal/core/domain"
)

func newAuthTestRouter(t *testing.T, authService *fakeAuthService, limiter *rate.Limiter) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(authService, nopLogger{}, nopMetrics{})
	router, err := NewAuthRouter(&config.HTTP{AllowedOrigins: "*"}, limiter, handler)
	require.NoError(t, err)
	return router
}

func postLogin(router *Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	authService := &fakeAuthService{
		email:    "testuser@example.com",
		password: "Password123!",
		token:    "signed-token",
	}
	router := newAuthTestRouter(t, authService, rate.NewLimiter(rate.Inf, 0))

	rec := postLogin(router, `{"email":"testuser@example.com","password":"Password123!"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	authService := &fakeAuthService{
		email:    "testuser@example.com",
		password: "Password123!",
		token:    "signed-token",
	}
	router := newAuthTestRouter(t, authService, rate.NewLimiter(rate.Inf, 0))

	rec := postLogin(router, `{"email":"testuser@example.com","password":"WrongPassword1!"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid credentials", resp.Error)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestLogin_MalformedBody(t *testing.T) {
	router := newAuthTestRouter(t, &fakeAuthService{}, rate.NewLimiter(rate.Inf, 0))

	rec := postLogin(router, `{"email":"not-json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	router := newAuthTestRouter(t, &fakeAuthService{}, rate.NewLimiter(rate.Inf, 0))

	rec := postLogin(router, `{"email":"testuser@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InternalError(t *testing.T) {
	authService := &fakeAuthService{failWith: domain.ErrInternal}
	router := newAuthTestRouter(t, authService, rate.NewLimiter(rate.Inf, 0))

	rec := postLogin(router, `{"email":"testuser@example.com","password":"Password123!"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}
