package application

import (
	"context"
	"sort"

	"github.com/wyfcoding/retailbackend/internal/catalog/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(repo domain.ProductRepository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// GetProduct 按 ID 查询商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load product", err)
	}
	if product == nil {
		return nil, errs.New(errs.KindNotFound, "product not found")
	}
	return product, nil
}

// ListByCategory 按类目列出商品
func (s *CatalogQueryService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.repo.ListByCategory(ctx, domain.Category(category))
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list products", err)
	}
	return products, nil
}

// SearchByName 按名称子串检索商品
func (s *CatalogQueryService) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	products, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "search products", err)
	}
	return products, nil
}

// ListAll 列出全部商品
func (s *CatalogQueryService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list products", err)
	}
	return products, nil
}

// DealOfTheDay 按评分总和降序取第一名，同分保持加载顺序
func (s *CatalogQueryService) DealOfTheDay(ctx context.Context) (*domain.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "list products", err)
	}
	if len(products) == 0 {
		return nil, errs.New(errs.KindNotFound, "catalog is empty")
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].RatingSum() > products[j].RatingSum()
	})
	return products[0], nil
}
