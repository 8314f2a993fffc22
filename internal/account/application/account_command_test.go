package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

func newAccountService(repo *fakeUserRepository) *AccountCommandService {
	return NewAccountCommandService(repo, fakeHasher{}, fakeTokenIssuer{}, nil)
}

func TestSignUp_CreatesUserWithHashedPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newAccountService(repo)

	user, err := svc.SignUp(context.Background(), SignUpCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "hashed:secret123", user.PasswordHash)
	assert.Empty(t, user.Address)
}

func TestSignUp_Validation(t *testing.T) {
	svc := newAccountService(newFakeUserRepository())

	tests := []struct {
		name string
		cmd  SignUpCommand
	}{
		{name: "missing fields", cmd: SignUpCommand{Email: "a@b.co", Password: "secret123"}},
		{name: "bad email", cmd: SignUpCommand{Name: "Ada", Email: "not-an-email", Password: "secret123"}},
		{name: "short password", cmd: SignUpCommand{Name: "Ada", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tc.cmd)
			assert.True(t, errs.IsInvalidArgument(err))
		})
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newAccountService(repo)

	_, err := svc.SignUp(context.Background(), SignUpCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), SignUpCommand{Name: "Ada II", Email: "ada@example.com", Password: "secret456"})
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newAccountService(repo)
	_, err := svc.SignUp(context.Background(), SignUpCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("success returns token and user", func(t *testing.T) {
		res, err := svc.Login(context.Background(), LoginCommand{Email: "ada@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "token-for-ada@example.com", res.Token)
		assert.Equal(t, int64(42), res.ExpiresAt)
		assert.Equal(t, "Ada", res.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginCommand{Email: "ada@example.com", Password: "nope1234"})
		assert.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginCommand{Email: "ghost@example.com", Password: "secret123"})
		assert.True(t, errs.IsInvalidArgument(err))
	})
}

func TestStoreTimeoutSurfacesAsRetryable(t *testing.T) {
	repo := newFakeUserRepository()
	repo.block = true
	svc := newAccountService(repo)
	svc.storeTimeout = 10 * time.Millisecond

	_, err := svc.Login(context.Background(), LoginCommand{Email: "ada@example.com", Password: "secret123"})
	assert.True(t, errs.IsTimeout(err), "stalled store call must surface as Timeout, got %v", err)
}

func TestSaveAddress(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newAccountService(repo)
	user, err := svc.SignUp(context.Background(), SignUpCommand{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.SaveAddress(context.Background(), user.ID, "1 Infinite Loop")
	require.NoError(t, err)
	assert.Equal(t, "1 Infinite Loop", updated.Address)

	_, err = svc.SaveAddress(context.Background(), 999, "nowhere")
	assert.True(t, errs.IsNotFound(err))
}
