package domain

import "context"

// OrderRepository 订单仓储接口，未命中返回 (nil, nil)
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderNo string, status Status) error
	// WithTx 在单个数据库事务内执行 fn，事务经 ctx 透传给仓储调用
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
