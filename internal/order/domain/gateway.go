package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientStock 库存不足，下单事务整体回滚
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductSnapshot 下单时刻的商品快照
type ProductSnapshot struct {
	ID       uint
	Name     string
	Price    decimal.Decimal
	Category string
	Image    string
	Stock    int
}

// CatalogGateway 目录网关。DeductStock 为条件扣减，
// 库存不足返回 ErrInsufficientStock。
type CatalogGateway interface {
	GetProduct(ctx context.Context, id uint) (*ProductSnapshot, error)
	DeductStock(ctx context.Context, id uint, quantity int) error
}

// AccountGateway 账户网关，下单成功后清空购物车
type AccountGateway interface {
	ClearCart(ctx context.Context, userID uint) error
}
