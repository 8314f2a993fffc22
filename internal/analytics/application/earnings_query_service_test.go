package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/retailbackend/internal/analytics/domain"
)

type fakeSalesRepository struct {
	lines []domain.SalesLine
}

func (r *fakeSalesRepository) ListAllLines(_ context.Context) ([]domain.SalesLine, error) {
	return r.lines, nil
}

func (r *fakeSalesRepository) ListLinesOfOrdersWithCategory(_ context.Context, category string) ([]domain.SalesLine, error) {
	orders := make(map[uint]bool)
	for _, line := range r.lines {
		if line.Category == category {
			orders[line.OrderID] = true
		}
	}
	var out []domain.SalesLine
	for _, line := range r.lines {
		if orders[line.OrderID] {
			out = append(out, line)
		}
	}
	return out, nil
}

func line(orderID uint, category, price string, qty int) domain.SalesLine {
	return domain.SalesLine{
		OrderID:  orderID,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func TestComputeEarnings(t *testing.T) {
	repo := &fakeSalesRepository{lines: []domain.SalesLine{
		line(1, "Mobiles", "500.00", 2),
		line(2, "Books", "19.99", 3),
		line(3, "Mobiles", "100.00", 1),
	}}
	svc := NewEarningsQueryService(repo)

	earnings, err := svc.ComputeEarnings(context.Background())
	require.NoError(t, err)

	assert.True(t, earnings.Total.Equal(decimal.RequireFromString("1159.97")))
	assert.True(t, earnings.ByCategory["Mobiles"].Equal(decimal.RequireFromString("1100.00")))
	assert.True(t, earnings.ByCategory["Books"].Equal(decimal.RequireFromString("59.97")))

	// 没有销量的类目也要出现在分桶里
	fashion, ok := earnings.ByCategory["Fashion"]
	require.True(t, ok)
	assert.True(t, fashion.IsZero())
	assert.Len(t, earnings.ByCategory, 5)
}

func TestComputeEarningsMixedOrderCountsWholeOrderPerBucket(t *testing.T) {
	// 订单 1 同时含 Mobiles 和 Books：整单 110 要同时计入两个桶
	repo := &fakeSalesRepository{lines: []domain.SalesLine{
		line(1, "Mobiles", "100.00", 1),
		line(1, "Books", "10.00", 1),
		line(2, "Books", "5.00", 2),
	}}
	svc := NewEarningsQueryService(repo)

	earnings, err := svc.ComputeEarnings(context.Background())
	require.NoError(t, err)

	assert.True(t, earnings.Total.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, earnings.ByCategory["Mobiles"].Equal(decimal.RequireFromString("110.00")))
	assert.True(t, earnings.ByCategory["Books"].Equal(decimal.RequireFromString("120.00")))
}

func TestComputeEarningsEmpty(t *testing.T) {
	svc := NewEarningsQueryService(&fakeSalesRepository{})

	earnings, err := svc.ComputeEarnings(context.Background())
	require.NoError(t, err)
	assert.True(t, earnings.Total.IsZero())
	assert.Len(t, earnings.ByCategory, 5)
}
