package domain

import (
	"context"
	"time"
)

const (
	ProductCreatedEventType      = "product.created"
	ProductUpdatedEventType      = "product.updated"
	ProductRatedEventType        = "product.rated"
	ProductStockChangedEventType = "product.stock.changed"
)

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductRatedEvent 商品评分事件
type ProductRatedEvent struct {
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductStockChangedEvent 商品库存变更事件
type ProductStockChangedEvent struct {
	ProductID uint      `json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 领域事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
