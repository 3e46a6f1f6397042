package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough!",
		AccessTokenExpiration: expiration,
		Issuer:                "shopcore-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(userID, RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, RoleCustomer, claims.Role)
	assert.Equal(t, "shopcore-test", claims.Issuer)
	assert.False(t, claims.IsAdmin())

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-1 * time.Minute)

	token, _, err := svc.Generate(uuid.New(), RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewTokenService(config.JWTConfig{
		Secret:                "a-completely-different-secret-value!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "shopcore-test",
	})

	token, _, err := other.Generate(uuid.New(), RoleCustomer)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnexpectedSigningMethod(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	// Token signed with "none" must never validate.
	claims := &Claims{UserID: uuid.New().String(), Role: RoleAdmin}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissingUserID(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough!"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestAdminRole(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	token, _, err := svc.Generate(uuid.New(), RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}
