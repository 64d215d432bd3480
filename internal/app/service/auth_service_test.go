package service

import (
	"context"
	"testing"
	"time"

	"docuverify/internal/common"
	"docuverify/internal/common/security"
	"docuverify/internal/domain/model"
	"docuverify/internal/domain/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *repository.InMemoryUserRepository) {
	userRepo := repository.NewInMemoryUserRepository()
	tokens := security.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewAuthService(userRepo, tokens, zerolog.Nop()), userRepo
}

func TestRegisterValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
		want common.Kind
	}{
		{"missing name", RegisterRequest{Email: "a@b.co", Password: "secret1"}, common.KindNameRequired},
		{"blank name", RegisterRequest{Name: "   ", Email: "a@b.co", Password: "secret1"}, common.KindNameRequired},
		{"missing email", RegisterRequest{Name: "Asha", Password: "secret1"}, common.KindEmailRequired},
		{"bad email shape", RegisterRequest{Name: "Asha", Email: "not-an-email", Password: "secret1"}, common.KindEmailInvalid},
		{"email before password", RegisterRequest{Name: "Asha", Email: "nope"}, common.KindEmailInvalid},
		{"missing password", RegisterRequest{Name: "Asha", Email: "a@b.co"}, common.KindPasswordRequired},
		{"short password", RegisterRequest{Name: "Asha", Email: "a@b.co", Password: "12345"}, common.KindPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAuthService()
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, common.KindOf(err))
		})
	}
}

func TestRegisterCreatesCitizen(t *testing.T) {
	svc, userRepo := newAuthService()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCitizen, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.HashedPassword)

	// Stored password is hashed, not the plaintext
	stored, err := userRepo.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "secret1", stored.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Imposter", Email: "asha@example.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, common.KindEmailExists, common.KindOf(err))

	// First registration unaffected: original credentials still log in
	result, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, result.User.ID)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Password: "secret1"})
		assert.Equal(t, common.KindEmailRequired, common.KindOf(err))
	})

	t.Run("missing password checked before lookup", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com"})
		assert.Equal(t, common.KindPasswordRequired, common.KindOf(err))
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
		_, errWrongPw := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong-password"})
		assert.Equal(t, common.KindInvalidCreds, common.KindOf(errUnknown))
		assert.Equal(t, common.KindInvalidCreds, common.KindOf(errWrongPw))
		assert.Equal(t, common.MessageOf(errUnknown), common.MessageOf(errWrongPw))
	})

	t.Run("valid credentials issue a token", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, model.RoleCitizen, result.User.Role)
		assert.Empty(t, result.User.HashedPassword)
	})
}
