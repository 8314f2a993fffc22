// Package application 经营分析应用层
package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/retailbackend/internal/analytics/domain"
	catalogdomain "github.com/wyfcoding/retailbackend/internal/catalog/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// Earnings 总销售额与固定类目分桶
type Earnings struct {
	Total      decimal.Decimal            `json:"total_earnings"`
	ByCategory map[string]decimal.Decimal `json:"category_earnings"`
}

// EarningsQueryService 销售额查询服务
type EarningsQueryService struct {
	sales domain.SalesRepository
}

func NewEarningsQueryService(sales domain.SalesRepository) *EarningsQueryService {
	return &EarningsQueryService{sales: sales}
}

// ComputeEarnings 汇总全部订单行的销售额，并按固定类目逐一重查分桶。
// 分桶按订单归集：订单只要含该类目的行，整单全部行都计入该桶，
// 跨类目订单会同时进多个桶，各桶之和可以大于 total。
func (s *EarningsQueryService) ComputeEarnings(ctx context.Context) (*Earnings, error) {
	lines, err := s.sales.ListAllLines(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list sales", err)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount())
	}

	byCategory := make(map[string]decimal.Decimal, len(catalogdomain.Categories()))
	for _, category := range catalogdomain.Categories() {
		categoryLines, err := s.sales.ListLinesOfOrdersWithCategory(ctx, string(category))
		if err != nil {
			return nil, errs.Wrap(errs.KindInternal, "list category sales", err)
		}
		sum := decimal.Zero
		for _, line := range categoryLines {
			sum = sum.Add(line.Amount())
		}
		byCategory[string(category)] = sum
	}

	return &Earnings{Total: total, ByCategory: byCategory}, nil
}
