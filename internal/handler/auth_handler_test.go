package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizmaster-api/pkg/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.GateService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gate, err := auth.NewGateService("validation123", "admin123", "test-signing-key", time.Hour)
	require.NoError(t, err)

	h := NewAuthHandler(gate)
	router := gin.New()
	router.POST("/api/auth/validation", h.ValidationLogin)
	router.POST("/api/auth/admin", h.AdminLogin)
	return router, gate
}

func postLogin(router *gin.Engine, path, password string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"password":"` + password + `"}`)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_ValidationLogin(t *testing.T) {
	router, gate := newAuthRouter(t)

	w := postLogin(router, "/api/auth/validation", "validation123")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Role    string `json:"role"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, auth.RoleValidation, resp.Role)

	role, err := gate.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleValidation, role)
}

func TestAuthHandler_AdminLogin_WrongPassword(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postLogin(router, "/api/auth/admin", "validation123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/admin", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
