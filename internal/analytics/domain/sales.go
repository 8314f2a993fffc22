// Package domain 经营分析读侧模型，直接建立在订单行快照之上
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// SalesLine 一行已售出的商品快照
type SalesLine struct {
	OrderID  uint            `json:"order_id"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Amount 行销售额
func (l SalesLine) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SalesRepository 销售读仓储
type SalesRepository interface {
	ListAllLines(ctx context.Context) ([]SalesLine, error)
	// ListLinesOfOrdersWithCategory 按订单归集：只要订单含该类目的行，
	// 返回整单全部行（含其他类目的行）
	ListLinesOfOrdersWithCategory(ctx context.Context, category string) ([]SalesLine, error)
}
