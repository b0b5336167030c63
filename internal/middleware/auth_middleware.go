package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/pkg/auth"
)

// GateMiddleware защищает маршруты модерации и админки токенами парольного шлюза
type GateMiddleware struct {
	gate *auth.GateService
}

// NewGateMiddleware создает новый middleware шлюза
func NewGateMiddleware(gate *auth.GateService) *GateMiddleware {
	return &GateMiddleware{gate: gate}
}

// RequireRole проверяет Bearer-токен шлюза и требует одну из перечисленных ролей.
// Роль admin всегда включает доступ validation-маршрутов.
func (m *GateMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			c.Abort()
			return
		}

		role, err := m.gate.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
			c.Abort()
			return
		}

		allowed := role == auth.RoleAdmin
		if !allowed {
			for _, r := range roles {
				if role == r {
					allowed = true
					break
				}
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role", "error_type": "forbidden"})
			c.Abort()
			return
		}

		c.Set("gateRole", role)
		c.Next()
	}
}
