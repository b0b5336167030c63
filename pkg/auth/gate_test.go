package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

func newTestGate(t *testing.T) *GateService {
	t.Helper()
	gate, err := NewGateService("validation-pass", "admin-pass", "test-signing-key", time.Hour)
	require.NoError(t, err)
	return gate
}

func TestNewGateService_Validation(t *testing.T) {
	_, err := NewGateService("", "admin", "key", time.Hour)
	assert.Error(t, err)

	_, err = NewGateService("validation", "admin", "", time.Hour)
	assert.Error(t, err)
}

func TestGateService_Authenticate_Validation(t *testing.T) {
	gate := newTestGate(t)

	token, err := gate.Authenticate(RoleValidation, "validation-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	role, err := gate.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleValidation, role)
}

func TestGateService_Authenticate_WrongPassword(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.Authenticate(RoleValidation, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = gate.Authenticate(RoleAdmin, "validation-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGateService_Authenticate_AdminPasswordOpensValidation(t *testing.T) {
	gate := newTestGate(t)

	// Админский пароль валиден и для модераторского входа
	token, err := gate.Authenticate(RoleValidation, "admin-pass")
	require.NoError(t, err)

	role, err := gate.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleValidation, role)
}

func TestGateService_Authenticate_UnknownRole(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.Authenticate("superuser", "admin-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGateService_BcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	gate, err := NewGateService(string(hash), "admin-pass", "test-signing-key", time.Hour)
	require.NoError(t, err)

	_, err = gate.Authenticate(RoleValidation, "s3cret")
	assert.NoError(t, err)

	_, err = gate.Authenticate(RoleValidation, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGateService_ValidateToken_WrongKey(t *testing.T) {
	gate := newTestGate(t)
	other, err := NewGateService("validation-pass", "admin-pass", "another-key", time.Hour)
	require.NoError(t, err)

	token, err := gate.Authenticate(RoleAdmin, "admin-pass")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGateService_ValidateToken_Expired(t *testing.T) {
	gate, err := NewGateService("validation-pass", "admin-pass", "test-signing-key", time.Nanosecond)
	require.NoError(t, err)

	token, err := gate.Authenticate(RoleAdmin, "admin-pass")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = gate.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGateService_ValidateToken_Garbage(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
