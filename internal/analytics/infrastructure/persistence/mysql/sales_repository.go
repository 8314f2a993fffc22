// Package mysql 经营分析 MySQL 读仓储，查询订单行快照表
package mysql

import (
	"context"

	"github.com/wyfcoding/retailbackend/internal/analytics/domain"
	"gorm.io/gorm"
)

type salesRepository struct{ db *gorm.DB }

func NewSalesRepository(db *gorm.DB) domain.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) ListAllLines(ctx context.Context) ([]domain.SalesLine, error) {
	var lines []domain.SalesLine
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_id, product_category AS category, product_price AS price, quantity").
		Where("deleted_at IS NULL").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *salesRepository) ListLinesOfOrdersWithCategory(ctx context.Context, category string) ([]domain.SalesLine, error) {
	// 先找出含该类目行的订单，再取这些订单的整单行
	orderIDs := r.db.Table("order_items").
		Select("order_id").
		Where("product_category = ? AND deleted_at IS NULL", category)

	var lines []domain.SalesLine
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_id, product_category AS category, product_price AS price, quantity").
		Where("order_id IN (?) AND deleted_at IS NULL", orderIDs).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
