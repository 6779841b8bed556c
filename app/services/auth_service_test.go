package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/auth"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	return services.NewAuthService(repositories.NewSellerRepository(newTestDB(t)))
}

func TestRegisterIssuesValidToken(t *testing.T) {
	svc := newAuthService(t)

	seller, token, err := svc.Register(services.RegisterInput{
		Name:     "Mina",
		Email:    "  Mina@Example.COM ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "mina@example.com", seller.Email)
	assert.NotZero(t, seller.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, claims.SellerID)
	assert.Equal(t, "Mina", claims.Name)
	assert.Equal(t, "mina@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(services.RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, _, err = svc.Register(services.RegisterInput{Name: "Other", Email: "MINA@example.com", Password: "pw123456"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	registered, _, err := svc.Register(services.RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "pw123456"})
	require.NoError(t, err)

	seller, token, err := svc.Login(services.LoginInput{Email: "mina@example.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, seller.ID)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(services.RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "pw123456"})
	require.NoError(t, err)

	// Unknown email and wrong password share one message so the response
	// never confirms whether an address is registered.
	_, _, errUnknown := svc.Login(services.LoginInput{Email: "ghost@example.com", Password: "pw123456"})
	_, _, errWrongPw := svc.Login(services.LoginInput{Email: "mina@example.com", Password: "nope-nope"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, apperr.MessageOf(errUnknown), apperr.MessageOf(errWrongPw))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(errUnknown))
}

func TestIdentity(t *testing.T) {
	svc := newAuthService(t)

	seller, _, err := svc.Register(services.RegisterInput{Name: "Mina", Email: "mina@example.com", Password: "pw123456"})
	require.NoError(t, err)

	got, ok := svc.Identity(seller.ID)
	require.True(t, ok)
	assert.Equal(t, seller.Email, got.Email)

	_, ok = svc.Identity(seller.ID + 1000)
	assert.False(t, ok)
}
