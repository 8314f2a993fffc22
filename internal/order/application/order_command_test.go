package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/retailbackend/internal/order/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// fakeStore 把订单、库存、购物车揉进一个带回滚的内存存储，
// WithTx 在出错时恢复快照，模拟数据库事务语义。
type fakeStore struct {
	stock        map[uint]int
	products     map[uint]*domain.ProductSnapshot
	orders       map[string]*domain.Order
	clearedCarts map[uint]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stock:        make(map[uint]int),
		products:     make(map[uint]*domain.ProductSnapshot),
		orders:       make(map[string]*domain.Order),
		clearedCarts: make(map[uint]bool),
	}
}

func (s *fakeStore) put(id uint, name, price, category string, stock int) {
	s.products[id] = &domain.ProductSnapshot{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
	s.stock[id] = stock
}

func (s *fakeStore) snapshot() *fakeStore {
	copied := newFakeStore()
	for k, v := range s.stock {
		copied.stock[k] = v
	}
	for k, v := range s.products {
		copied.products[k] = v
	}
	for k, v := range s.orders {
		copied.orders[k] = v
	}
	for k, v := range s.clearedCarts {
		copied.clearedCarts[k] = v
	}
	return copied
}

func (s *fakeStore) restore(from *fakeStore) {
	s.stock = from.stock
	s.products = from.products
	s.orders = from.orders
	s.clearedCarts = from.clearedCarts
}

// --- domain.OrderRepository ---

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

func (s *fakeStore) Save(_ context.Context, order *domain.Order) error {
	s.orders[order.OrderNo] = order
	return nil
}

func (s *fakeStore) GetByOrderNo(_ context.Context, orderNo string) (*domain.Order, error) {
	return s.orders[orderNo], nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID uint) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, orderNo string, status domain.Status) error {
	if o, ok := s.orders[orderNo]; ok {
		o.Status = status
	}
	return nil
}

// --- domain.CatalogGateway ---

func (s *fakeStore) GetProduct(_ context.Context, id uint) (*domain.ProductSnapshot, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	out.Stock = s.stock[id]
	return &out, nil
}

func (s *fakeStore) DeductStock(_ context.Context, id uint, quantity int) error {
	if s.stock[id] < quantity {
		return domain.ErrInsufficientStock
	}
	s.stock[id] -= quantity
	return nil
}

// --- domain.AccountGateway ---

func (s *fakeStore) ClearCart(_ context.Context, userID uint) error {
	s.clearedCarts[userID] = true
	return nil
}

func newOrderService(store *fakeStore) *OrderCommandService {
	return NewOrderCommandService(store, store, store, nil)
}

func TestPlaceOrderHappyPath(t *testing.T) {
	store := newFakeStore()
	store.put(1, "phone", "100.00", "Mobiles", 5)

	svc := newOrderService(store)
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:      9,
		Lines:       []OrderLine{{ProductID: 1, Quantity: 5}},
		ClientTotal: decimal.RequireFromString("500.00"),
		Address:     "42 Main St",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("500.00")))
	assert.Contains(t, order.OrderNo, "ORD-")
	require.Len(t, order.Items, 1)
	assert.Equal(t, "phone", order.Items[0].ProductName)

	assert.Equal(t, 0, store.stock[1])
	assert.True(t, store.clearedCarts[9])
	assert.Len(t, store.orders, 1)
}

func TestPlaceOrderOutOfStockRollsBackWholeOrder(t *testing.T) {
	store := newFakeStore()
	store.put(1, "phone", "100.00", "Mobiles", 10)
	store.put(2, "lamp", "20.00", "Essentials", 1)

	svc := newOrderService(store)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID: 9,
		Lines: []OrderLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
		ClientTotal: decimal.RequireFromString("260.00"),
		Address:     "42 Main St",
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "lamp is out of stock!")

	// 第一行已扣的库存随事务一起回滚
	assert.Equal(t, 10, store.stock[1])
	assert.Equal(t, 1, store.stock[2])
	assert.Empty(t, store.orders)
	assert.False(t, store.clearedCarts[9])
}

func TestPlaceOrderZeroStockRejected(t *testing.T) {
	store := newFakeStore()
	store.put(1, "phone", "100.00", "Mobiles", 0)

	svc := newOrderService(store)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:      9,
		Lines:       []OrderLine{{ProductID: 1, Quantity: 1}},
		ClientTotal: decimal.RequireFromString("100.00"),
		Address:     "42 Main St",
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))

	assert.Equal(t, 0, store.stock[1])
	assert.Empty(t, store.orders)
}

func TestPlaceOrderTotalMismatchRejected(t *testing.T) {
	store := newFakeStore()
	store.put(1, "phone", "100.00", "Mobiles", 5)

	svc := newOrderService(store)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:      9,
		Lines:       []OrderLine{{ProductID: 1, Quantity: 1}},
		ClientTotal: decimal.RequireFromString("99.00"),
		Address:     "42 Main St",
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "total price mismatch")

	assert.Equal(t, 5, store.stock[1])
	assert.Empty(t, store.orders)
}

func TestPlaceOrderValidation(t *testing.T) {
	store := newFakeStore()
	store.put(1, "phone", "100.00", "Mobiles", 5)
	svc := newOrderService(store)

	tests := []struct {
		name string
		cmd  PlaceOrderCommand
		want func(error) bool
	}{
		{
			name: "empty cart",
			cmd:  PlaceOrderCommand{UserID: 9, Address: "a"},
			want: errs.IsInvalidArgument,
		},
		{
			name: "missing address",
			cmd: PlaceOrderCommand{
				UserID: 9,
				Lines:  []OrderLine{{ProductID: 1, Quantity: 1}},
			},
			want: errs.IsInvalidArgument,
		},
		{
			name: "zero quantity",
			cmd: PlaceOrderCommand{
				UserID:  9,
				Lines:   []OrderLine{{ProductID: 1, Quantity: 0}},
				Address: "a",
			},
			want: errs.IsInvalidArgument,
		},
		{
			name: "unknown product",
			cmd: PlaceOrderCommand{
				UserID:  9,
				Lines:   []OrderLine{{ProductID: 99, Quantity: 1}},
				Address: "a",
			},
			want: errs.IsNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.want(err))
			assert.Empty(t, store.orders)
		})
	}
}

func TestChangeStatusFollowsTransitionTable(t *testing.T) {
	store := newFakeStore()
	store.orders["ORD-1"] = &domain.Order{OrderNo: "ORD-1", UserID: 9, Status: domain.StatusPlaced}
	svc := newOrderService(store)

	order, err := svc.ChangeStatus(context.Background(), ChangeStatusCommand{
		OrderNo: "ORD-1", Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)

	// CONFIRMED 不能直接跳 DELIVERED
	_, err = svc.ChangeStatus(context.Background(), ChangeStatusCommand{
		OrderNo: "ORD-1", Status: domain.StatusDelivered,
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))

	_, err = svc.ChangeStatus(context.Background(), ChangeStatusCommand{
		OrderNo: "ORD-1", Status: "PACKED",
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))

	_, err = svc.ChangeStatus(context.Background(), ChangeStatusCommand{
		OrderNo: "ORD-404", Status: domain.StatusConfirmed,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
