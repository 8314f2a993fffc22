// Package domain 订单上下文领域模型
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status 订单状态
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// transitions 合法状态流转表，DELIVERED 与 CANCELLED 为终态
var transitions = map[Status][]Status{
	StatusPlaced:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPlaced, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem 订单行，下单时刻的商品快照
type OrderItem struct {
	gorm.Model
	OrderID         uint            `gorm:"index;not null" json:"-"`
	ProductID       uint            `gorm:"not null" json:"product_id"`
	ProductName     string          `gorm:"size:255;not null" json:"product_name"`
	ProductCategory string          `gorm:"size:32;index;not null" json:"product_category"`
	ProductImage    string          `gorm:"size:512" json:"product_image"`
	ProductPrice    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"product_price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 行小计
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order 订单聚合根
type Order struct {
	gorm.Model
	OrderNo    string          `gorm:"size:64;uniqueIndex;not null" json:"order_no"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total_price"`
	Address    string          `gorm:"size:512" json:"address"`
	OrderedAt  int64           `gorm:"not null" json:"ordered_at"`
	Status     Status          `gorm:"size:16;index;not null" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}

// ComputeTotal 按快照价重算订单总额
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
