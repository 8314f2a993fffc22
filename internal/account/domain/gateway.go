package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductSnapshot 加入购物车时从目录取的商品快照
type ProductSnapshot struct {
	ID       uint
	Name     string
	Price    decimal.Decimal
	Category string
	Image    string
}

// CatalogGateway 目录网关，未命中返回 (nil, nil)
type CatalogGateway interface {
	GetProduct(ctx context.Context, id uint) (*ProductSnapshot, error)
}

// PasswordHasher 凭证散列能力，具体实现由认证服务提供
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer 令牌签发能力，具体实现由认证服务提供
type TokenIssuer interface {
	Issue(ctx context.Context, userID uint, email string, role Role) (token string, expiresAt int64, err error)
}
