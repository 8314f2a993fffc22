package domain

import "context"

// ProductRepository 商品仓储接口
// GetByID 未命中时返回 (nil, nil)
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	ListByCategory(ctx context.Context, category Category) ([]*Product, error)
	SearchByName(ctx context.Context, name string) ([]*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	// DeductStock 原子条件扣减：stock >= quantity 时扣减并返回 nil，
	// 否则返回 ErrInsufficientStock，杜绝并发下单超卖
	DeductStock(ctx context.Context, id uint, quantity int) error
	// SaveRatings 持久化评分集合，整体替换该商品的评分行
	SaveRatings(ctx context.Context, product *Product) error
}
