package application

import (
	"context"

	"github.com/wyfcoding/retailbackend/internal/order/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	orders domain.OrderRepository
}

func NewOrderQueryService(orders domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{orders: orders}
}

// ListMyOrders 当前用户的全部订单
func (s *OrderQueryService) ListMyOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list orders", err)
	}
	return orders, nil
}

// ListAllOrders 管理端全量订单
func (s *OrderQueryService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list orders", err)
	}
	return orders, nil
}

// GetOrder 按单号取订单
func (s *OrderQueryService) GetOrder(ctx context.Context, orderNo string) (*domain.Order, error) {
	order, err := s.orders.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "lookup order", err)
	}
	if order == nil {
		return nil, errs.New(errs.KindNotFound, "order not found")
	}
	return order, nil
}
