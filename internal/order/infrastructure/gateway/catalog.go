// Package gateway 订单上下文对其他上下文的进程内适配
package gateway

import (
	"context"
	"errors"

	catalogdomain "github.com/wyfcoding/retailbackend/internal/catalog/domain"
	"github.com/wyfcoding/retailbackend/internal/order/domain"
)

type catalogGateway struct {
	products catalogdomain.ProductRepository
}

func NewCatalogGateway(products catalogdomain.ProductRepository) domain.CatalogGateway {
	return &catalogGateway{products: products}
}

func (g *catalogGateway) GetProduct(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
	product, err := g.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return &domain.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: string(product.Category),
		Image:    product.FirstImage(),
		Stock:    product.Stock,
	}, nil
}

func (g *catalogGateway) DeductStock(ctx context.Context, id uint, quantity int) error {
	err := g.products.DeductStock(ctx, id, quantity)
	if errors.Is(err, catalogdomain.ErrInsufficientStock) {
		return domain.ErrInsufficientStock
	}
	return err
}
