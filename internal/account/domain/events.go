package domain

import (
	"context"
	"time"
)

const (
	UserRegisteredEventType  = "user.registered"
	CartItemAddedEventType   = "cart.item.added"
	CartItemRemovedEventType = "cart.item.removed"
)

// UserRegisteredEvent 用户注册事件
type UserRegisteredEvent struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 领域事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
