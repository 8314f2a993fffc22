package application

import (
	"context"
	"time"

	"github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// CartService 购物车服务
// 购物车变更不校验库存，库存只在下单时检查
type CartService struct {
	repo         domain.UserRepository
	catalog      domain.CatalogGateway
	publisher    domain.EventPublisher
	storeTimeout time.Duration
}

// NewCartService 创建购物车服务实例
func NewCartService(repo domain.UserRepository, catalog domain.CatalogGateway, publisher domain.EventPublisher) *CartService {
	return &CartService{
		repo:         repo,
		catalog:      catalog,
		publisher:    publisher,
		storeTimeout: defaultStoreTimeout,
	}
}

// AddToCart 加购：同商品合并数量，新商品以当时快照入行。返回完整购物车。
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint) ([]domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	snapshot, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr("lookup product", err)
	}
	if snapshot == nil {
		return nil, errs.New(errs.KindNotFound, "product not found")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if user == nil {
		return nil, errs.New(errs.KindNotFound, "user not found")
	}

	user.AddProduct(*snapshot)
	if err := s.repo.SaveCart(ctx, user); err != nil {
		return nil, storeErr("save cart", err)
	}

	if s.publisher != nil {
		event := domain.CartItemAddedEvent{
			UserID:    userID,
			ProductID: productID,
			Quantity:  1,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.CartItemAddedEventType, user.Email, event)
	}
	return user.Cart, nil
}

// RemoveFromCart 减购：数量 -1，减到 0 整行移除；不在购物车中报 NotFound。
// 返回完整购物车。
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uint) ([]domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	snapshot, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, storeErr("lookup product", err)
	}
	if snapshot == nil {
		return nil, errs.New(errs.KindNotFound, "product not found")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("lookup user", err)
	}
	if user == nil {
		return nil, errs.New(errs.KindNotFound, "user not found")
	}

	if !user.RemoveProduct(productID) {
		return nil, errs.New(errs.KindNotFound, "product not found in cart")
	}
	if err := s.repo.SaveCart(ctx, user); err != nil {
		return nil, storeErr("save cart", err)
	}

	if s.publisher != nil {
		event := domain.CartItemRemovedEvent{
			UserID:    userID,
			ProductID: productID,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.CartItemRemovedEventType, user.Email, event)
	}
	return user.Cart, nil
}
