package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// Роли, выдаваемые парольным шлюзом
const (
	RoleValidation = "validation"
	RoleAdmin      = "admin"
)

// GateClaims содержит поля токена доступа модерации/админки
type GateClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GateService реализует парольный шлюз: статическое сравнение пароля
// с настроенным секретом и выдача короткоживущего токена с ролью.
// Кто может вызывать модерацию вообще — решается здесь, до ядра.
type GateService struct {
	validationSecret string
	adminSecret      string
	signingKey       []byte
	tokenTTL         time.Duration
}

// NewGateService создает новый парольный шлюз
func NewGateService(validationSecret, adminSecret, signingKey string, tokenTTL time.Duration) (*GateService, error) {
	if validationSecret == "" || adminSecret == "" {
		return nil, fmt.Errorf("gate passwords must be configured")
	}
	if signingKey == "" {
		return nil, fmt.Errorf("gate signing key must be configured")
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &GateService{
		validationSecret: validationSecret,
		adminSecret:      adminSecret,
		signingKey:       []byte(signingKey),
		tokenTTL:         tokenTTL,
	}, nil
}

// checkSecret сравнивает пароль с настроенным секретом.
// Секрет может быть задан bcrypt-хешем (префикс $2) либо открытым текстом.
func checkSecret(secret, password string) bool {
	if strings.HasPrefix(secret, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	return secret == password
}

// Authenticate проверяет пароль и возвращает подписанный токен с ролью.
// admin-пароль открывает и validation-доступ, как в исходной постановке.
func (g *GateService) Authenticate(role, password string) (string, error) {
	switch role {
	case RoleValidation:
		if !checkSecret(g.validationSecret, password) && !checkSecret(g.adminSecret, password) {
			return "", fmt.Errorf("%w: wrong password", apperrors.ErrUnauthorized)
		}
	case RoleAdmin:
		if !checkSecret(g.adminSecret, password) {
			return "", fmt.Errorf("%w: wrong password", apperrors.ErrUnauthorized)
		}
	default:
		return "", fmt.Errorf("%w: unknown gate role %q", apperrors.ErrValidation, role)
	}

	now := time.Now()
	claims := GateClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign gate token: %w", err)
	}
	return signed, nil
}

// ValidateToken проверяет подпись и срок токена и возвращает роль
func (g *GateService) ValidateToken(tokenString string) (string, error) {
	claims := &GateClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid gate token", apperrors.ErrUnauthorized)
	}
	return claims.Role, nil
}
