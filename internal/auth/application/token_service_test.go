package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/internal/auth/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

type fakeSessionRepository struct {
	sessions map[string]*domain.AuthSession
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*domain.AuthSession)}
}

func (r *fakeSessionRepository) Save(_ context.Context, session *domain.AuthSession) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepository) Get(_ context.Context, token string) (*domain.AuthSession, error) {
	return r.sessions[token], nil
}

func (r *fakeSessionRepository) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func TestIssueThenVerify(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewTokenService("test-secret", repo)

	token, expiresAt, err := svc.Issue(context.Background(), 7, "alice@example.com", accountdomain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	session, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), session.UserID)
	assert.Equal(t, "alice@example.com", session.Email)
	assert.Equal(t, "admin", session.Role)
}

func TestVerifyFallsBackToSignatureWhenSessionMissing(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewTokenService("test-secret", repo)

	token, _, err := svc.Issue(context.Background(), 3, "bob@example.com", accountdomain.RoleUser)
	require.NoError(t, err)

	// 会话被清掉后仍可凭签名通过
	require.NoError(t, repo.Delete(context.Background(), token))

	session, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), session.UserID)
	assert.Equal(t, "user", session.Role)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret", newFakeSessionRepository())
	other := NewTokenService("other-secret", newFakeSessionRepository())

	foreign, _, err := other.Issue(context.Background(), 1, "eve@example.com", accountdomain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), tt.token)
			require.Error(t, err)
			assert.True(t, errs.IsUnauthorized(err))
		})
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewTokenService("test-secret", repo)

	// 回拨时钟签发一个已过期的令牌
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, _, err := svc.Issue(context.Background(), 5, "old@example.com", accountdomain.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}
