// Package application 订单应用层
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/retailbackend/internal/order/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// OrderLine 下单行输入
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// PlaceOrderCommand 下单命令
type PlaceOrderCommand struct {
	UserID      uint
	Lines       []OrderLine
	ClientTotal decimal.Decimal
	Address     string
}

// ChangeStatusCommand 状态流转命令
type ChangeStatusCommand struct {
	OrderNo string
	Status  domain.Status
}

// OrderCommandService 订单命令服务
type OrderCommandService struct {
	orders    domain.OrderRepository
	catalog   domain.CatalogGateway
	accounts  domain.AccountGateway
	publisher domain.EventPublisher
}

// NewOrderCommandService 创建订单命令服务实例
func NewOrderCommandService(
	orders domain.OrderRepository,
	catalog domain.CatalogGateway,
	accounts domain.AccountGateway,
	publisher domain.EventPublisher,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		catalog:   catalog,
		accounts:  accounts,
		publisher: publisher,
	}
}

// PlaceOrder 下单。整个流程跑在一个数据库事务里：任一行商品缺货或
// 校验失败则全单回滚，库存与购物车均不落任何变更。
func (s *OrderCommandService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if len(cmd.Lines) == 0 {
		return nil, errs.New(errs.KindInvalidArgument, "cart is empty")
	}
	if cmd.Address == "" {
		return nil, errs.New(errs.KindInvalidArgument, "address is required")
	}

	var order *domain.Order
	err := s.orders.WithTx(ctx, func(txCtx context.Context) error {
		items := make([]domain.OrderItem, 0, len(cmd.Lines))
		for _, line := range cmd.Lines {
			if line.Quantity < 1 {
				return errs.New(errs.KindInvalidArgument, "quantity must be at least 1")
			}

			product, err := s.catalog.GetProduct(txCtx, line.ProductID)
			if err != nil {
				return errs.Wrap(errs.KindInternal, "lookup product", err)
			}
			if product == nil {
				return errs.New(errs.KindNotFound, "product not found")
			}

			if err := s.catalog.DeductStock(txCtx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return errs.Newf(errs.KindInvalidArgument, "%s is out of stock!", product.Name)
				}
				return errs.Wrap(errs.KindInternal, "deduct stock", err)
			}

			items = append(items, domain.OrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				ProductCategory: product.Category,
				ProductImage:    product.Image,
				ProductPrice:    product.Price,
				Quantity:        line.Quantity,
			})
		}

		order = &domain.Order{
			OrderNo:   fmt.Sprintf("ORD-%d", idgen.GenID()),
			UserID:    cmd.UserID,
			Items:     items,
			Address:   cmd.Address,
			OrderedAt: time.Now().UnixMilli(),
			Status:    domain.StatusPlaced,
		}
		order.TotalPrice = order.ComputeTotal()

		// 服务端以快照价重算，客户端总价对不上直接拒单
		if !cmd.ClientTotal.Equal(order.TotalPrice) {
			return errs.New(errs.KindInvalidArgument, "total price mismatch")
		}

		if err := s.orders.Save(txCtx, order); err != nil {
			return errs.Wrap(errs.KindInternal, "save order", err)
		}
		if err := s.accounts.ClearCart(txCtx, cmd.UserID); err != nil {
			return errs.Wrap(errs.KindInternal, "clear cart", err)
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.OrderPlacedEvent{
			OrderNo:    order.OrderNo,
			UserID:     order.UserID,
			TotalPrice: order.TotalPrice.String(),
			ItemCount:  len(order.Items),
			Timestamp:  time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderPlacedEventType, order.OrderNo, event)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ChangeStatus 管理端流转订单状态，流转表之外的跳转一律拒绝
func (s *OrderCommandService) ChangeStatus(ctx context.Context, cmd ChangeStatusCommand) (*domain.Order, error) {
	if !cmd.Status.IsValid() {
		return nil, errs.Newf(errs.KindInvalidArgument, "unknown order status %q", cmd.Status)
	}

	order, err := s.orders.GetByOrderNo(ctx, cmd.OrderNo)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "lookup order", err)
	}
	if order == nil {
		return nil, errs.New(errs.KindNotFound, "order not found")
	}
	if !order.Status.CanTransitionTo(cmd.Status) {
		return nil, errs.Newf(errs.KindInvalidArgument, "cannot change order from %s to %s", order.Status, cmd.Status)
	}

	if err := s.orders.UpdateStatus(ctx, cmd.OrderNo, cmd.Status); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "update order status", err)
	}

	if s.publisher != nil {
		event := domain.OrderStatusChangedEvent{
			OrderNo:   order.OrderNo,
			UserID:    order.UserID,
			OldStatus: order.Status,
			NewStatus: cmd.Status,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.OrderStatusChangedEventType, order.OrderNo, event)
	}

	order.Status = cmd.Status
	return order, nil
}
