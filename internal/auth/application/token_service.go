// Package application 认证应用层：令牌签发、校验与口令散列。
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/internal/auth/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

const sessionTTL = 24 * time.Hour

// Claims JWT 载荷
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService 令牌服务：签发 JWT 并在 Redis 中落会话。
// 校验优先查会话，会话丢失时退回 JWT 签名校验。
type TokenService struct {
	secret   []byte
	sessions domain.SessionRepository
	now      func() time.Time
}

func NewTokenService(secret string, sessions domain.SessionRepository) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		sessions: sessions,
		now:      time.Now,
	}
}

// Issue 签发令牌并保存会话
func (s *TokenService) Issue(ctx context.Context, userID uint, email string, role accountdomain.Role) (string, int64, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(sessionTTL)

	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}

	session := &domain.AuthSession{
		Token:     token,
		UserID:    userID,
		Email:     email,
		Role:      string(role),
		CreatedAt: issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", 0, fmt.Errorf("save session: %w", err)
	}

	return token, expiresAt.Unix(), nil
}

// Verify 校验令牌，返回对应会话
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.AuthSession, error) {
	if token == "" {
		return nil, errs.New(errs.KindUnauthorized, "missing auth token")
	}

	session, err := s.sessions.Get(ctx, token)
	if err == nil && session != nil {
		if session.IsExpired() {
			return nil, errs.New(errs.KindUnauthorized, "session expired")
		}
		return session, nil
	}

	// 会话缺失或 Redis 不可用时退回签名校验
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, errs.New(errs.KindUnauthorized, "invalid auth token")
	}

	return &domain.AuthSession{
		Token:     token,
		UserID:    claims.UserID,
		Email:     claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke 注销令牌对应的会话
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
