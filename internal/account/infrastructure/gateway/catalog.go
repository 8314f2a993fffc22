// Package gateway 账户服务对其它限界上下文的进程内适配
package gateway

import (
	"context"

	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	catalogdomain "github.com/wyfcoding/retailbackend/internal/catalog/domain"
)

type catalogGateway struct {
	products catalogdomain.ProductRepository
}

// NewCatalogGateway 以目录仓储为后端实现账户侧的目录网关
func NewCatalogGateway(products catalogdomain.ProductRepository) accountdomain.CatalogGateway {
	return &catalogGateway{products: products}
}

func (g *catalogGateway) GetProduct(ctx context.Context, id uint) (*accountdomain.ProductSnapshot, error) {
	product, err := g.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return &accountdomain.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: string(product.Category),
		Image:    product.FirstImage(),
	}, nil
}
