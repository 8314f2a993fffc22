package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/retailbackend/internal/account/domain"
)

// fakeUserRepository 内存用户仓储，测试用
type fakeUserRepository struct {
	users  map[uint]*domain.User
	nextID uint
	// block 模拟存储阻塞：置 true 后每次调用等待 ctx 结束
	block bool
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]*domain.User), nextID: 1}
}

func (f *fakeUserRepository) wait(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeUserRepository) Save(ctx context.Context, user *domain.User) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.users[id], nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) SaveCart(ctx context.Context, user *domain.User) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) ClearCart(ctx context.Context, userID uint) error {
	if u, ok := f.users[userID]; ok {
		u.Cart = nil
	}
	return nil
}

func (f *fakeUserRepository) UpdateAddress(ctx context.Context, userID uint, address string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	if u, ok := f.users[userID]; ok {
		u.Address = address
	}
	return nil
}

// fakeCatalogGateway 内存目录网关，按 ID 返回预置快照
type fakeCatalogGateway struct {
	snapshots map[uint]domain.ProductSnapshot
}

func newFakeCatalogGateway() *fakeCatalogGateway {
	return &fakeCatalogGateway{snapshots: make(map[uint]domain.ProductSnapshot)}
}

func (f *fakeCatalogGateway) put(id uint, name, price, category string) {
	f.snapshots[id] = domain.ProductSnapshot{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func (f *fakeCatalogGateway) GetProduct(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
	snap, ok := f.snapshots[id]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

// fakeHasher 可逆"散列"，只为断言方便
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer 固定令牌签发
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(ctx context.Context, userID uint, email string, role domain.Role) (string, int64, error) {
	return "token-for-" + email, 42, nil
}
