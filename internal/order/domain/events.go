package domain

import (
	"context"
	"time"
)

const (
	OrderPlacedEventType        = "order.placed"
	OrderStatusChangedEventType = "order.status.changed"
)

// OrderPlacedEvent 下单成功事件
type OrderPlacedEvent struct {
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	TotalPrice string    `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent 订单状态流转事件
type OrderStatusChangedEvent struct {
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 领域事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
