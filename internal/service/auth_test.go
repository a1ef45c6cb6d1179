package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/capstone-api/internal/domain"
)

func TestAuthService_LoginSeedUser(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Login(context.Background(), "Damar@Kampus.com", "12345678")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, damarID, result.User.ID)
	assert.Empty(t, result.User.Password)

	claims, err := env.auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, damarID, claims.UserID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Login(ctx, "damar@kampus.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "nobody@kampus.com", "12345678")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "", "")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 2)
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.auth.Register(ctx, RegisterInput{
		Email:    "new@kampus.com",
		Password: "s3cret-pass",
		FullName: "New Student",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Empty(t, user.Password)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "пароль хранится как bcrypt хеш")

	result, err := env.auth.Login(ctx, "new@kampus.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestAuthService_RegisterFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, RegisterInput{Email: "damar@kampus.com", Password: "x", FullName: "Dup"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "x@kampus.com", Password: "x", FullName: "X", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = env.auth.Register(ctx, RegisterInput{Email: "y@kampus.com"})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.auth.Login(ctx, "dedek@kampus.com", "12345678")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		principal, err := env.auth.Authenticate(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, adminID, principal.ID)
		assert.True(t, principal.IsAdmin())
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := env.auth.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(nil, "other-secret", time.Hour)
		token, err := other.issueToken(&domain.User{ID: adminID, Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = env.auth.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService(nil, "test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		token, err := expired.issueToken(&domain.User{ID: adminID, Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = env.auth.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		token, err := env.auth.issueToken(&domain.User{ID: "removed", Role: domain.RoleAdmin})
		require.NoError(t, err)

		_, err = env.auth.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("role comes from the stored user", func(t *testing.T) {
		token, err := env.auth.issueToken(&domain.User{ID: sariID, Role: domain.RoleAdmin})
		require.NoError(t, err)

		principal, err := env.auth.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, principal.Role)
	})

	t.Run("none signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: adminID, Role: domain.RoleAdmin})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = env.auth.Authenticate(ctx, signed)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestCheckPassword(t *testing.T) {
	assert.True(t, checkPassword("12345678", "12345678"))
	assert.False(t, checkPassword("12345678", "1234567"))
	assert.False(t, checkPassword("", ""))
}
