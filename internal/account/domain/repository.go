package domain

import "context"

// UserRepository 用户仓储接口
// GetByID/GetByEmail 未命中时返回 (nil, nil)，购物车行一并加载
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SaveCart 整体替换该用户的购物车行，含删除
	SaveCart(ctx context.Context, user *User) error
	// ClearCart 删除该用户全部购物车行，下单事务内调用
	ClearCart(ctx context.Context, userID uint) error
	// UpdateAddress 覆盖收货地址
	UpdateAddress(ctx context.Context, userID uint, address string) error
}
