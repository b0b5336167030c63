package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/pkg/auth"
)

// AuthHandler обрабатывает вход через парольный шлюз модерации/админки
type AuthHandler struct {
	gate *auth.GateService
}

// NewAuthHandler создает новый обработчик шлюза
func NewAuthHandler(gate *auth.GateService) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// GateLoginRequest представляет запрос на вход
type GateLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ValidationLogin выдаёт токен доступа к модерации
func (h *AuthHandler) ValidationLogin(c *gin.Context) {
	h.login(c, auth.RoleValidation)
}

// AdminLogin выдаёт токен доступа к админке
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, auth.RoleAdmin)
}

func (h *AuthHandler) login(c *gin.Context, role string) {
	var req GateLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.gate.Authenticate(role, req.Password)
	if err != nil {
		respondServiceError(c, "AuthHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "role": role, "token": token})
}
