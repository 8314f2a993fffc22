package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/retailbackend/internal/catalog/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Images      []string
	Category    string
	Price       decimal.Decimal
	Stock       int
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	Images      []string
	Category    string
	Price       decimal.Decimal
	Stock       int
}

// RateProductCommand 评分命令
type RateProductCommand struct {
	ProductID uint
	UserID    uint
	Score     float64
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(repo domain.ProductRepository, publisher domain.EventPublisher) *CatalogCommandService {
	return &CatalogCommandService{repo: repo, publisher: publisher}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, errs.New(errs.KindInvalidArgument, "product name is required")
	}
	category := domain.Category(cmd.Category)
	if !category.IsValid() {
		return nil, errs.Newf(errs.KindInvalidArgument, "unknown category %q", cmd.Category)
	}
	if cmd.Price.IsNegative() {
		return nil, errs.New(errs.KindInvalidArgument, "price must not be negative")
	}
	if cmd.Stock < 0 {
		return nil, errs.New(errs.KindInvalidArgument, "stock must not be negative")
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Images:      cmd.Images,
		Category:    category,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "save product", err)
	}

	event := domain.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price.String(),
		Stock:     product.Stock,
		Category:  product.Category,
		Timestamp: time.Now(),
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.ProductCreatedEventType, product.Name, event)
	}
	return product, nil
}

// UpdateProduct 处理更新商品
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load product", err)
	}
	if product == nil {
		return nil, errs.New(errs.KindNotFound, "product not found")
	}
	category := domain.Category(cmd.Category)
	if !category.IsValid() {
		return nil, errs.Newf(errs.KindInvalidArgument, "unknown category %q", cmd.Category)
	}
	if cmd.Price.IsNegative() || cmd.Stock < 0 {
		return nil, errs.New(errs.KindInvalidArgument, "price and stock must not be negative")
	}

	oldStock := product.Stock
	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Images = cmd.Images
	product.Category = category
	product.Price = cmd.Price
	product.Stock = cmd.Stock

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "save product", err)
	}

	if s.publisher != nil {
		event := domain.ProductUpdatedEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price.String(),
			Stock:     product.Stock,
			Category:  product.Category,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.ProductUpdatedEventType, product.Name, event)

		if oldStock != product.Stock {
			stockEvent := domain.ProductStockChangedEvent{
				ProductID: product.ID,
				OldStock:  oldStock,
				NewStock:  product.Stock,
				Timestamp: time.Now(),
			}
			_ = s.publisher.Publish(ctx, domain.ProductStockChangedEventType, product.Name, stockEvent)
		}
	}
	return product, nil
}

// RateProduct 合并用户评分：同一用户重复评分覆盖旧值，每商品每用户至多一条
func (s *CatalogCommandService) RateProduct(ctx context.Context, cmd RateProductCommand) (*domain.Product, error) {
	if cmd.Score < 0 || cmd.Score > 5 {
		return nil, errs.New(errs.KindInvalidArgument, "rating must be between 0 and 5")
	}

	product, err := s.repo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load product", err)
	}
	if product == nil {
		return nil, errs.New(errs.KindNotFound, "product not found")
	}

	product.Rate(cmd.UserID, cmd.Score)
	if err := s.repo.SaveRatings(ctx, product); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "save ratings", err)
	}

	if s.publisher != nil {
		event := domain.ProductRatedEvent{
			ProductID: product.ID,
			UserID:    cmd.UserID,
			Score:     cmd.Score,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.ProductRatedEventType, product.Name, event)
	}
	return product, nil
}
