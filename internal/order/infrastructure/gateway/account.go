package gateway

import (
	"context"

	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/internal/order/domain"
)

type accountGateway struct {
	users accountdomain.UserRepository
}

func NewAccountGateway(users accountdomain.UserRepository) domain.AccountGateway {
	return &accountGateway{users: users}
}

func (g *accountGateway) ClearCart(ctx context.Context, userID uint) error {
	return g.users.ClearCart(ctx, userID)
}
