package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/retailbackend/internal/account/domain"
	"gorm.io/gorm"
)

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	return r.getDB(ctx).WithContext(ctx).Save(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.getDB(ctx).WithContext(ctx).Preload("Cart").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.getDB(ctx).WithContext(ctx).Preload("Cart").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveCart 先删后插整体替换，购物车行数少，省掉逐行 diff
func (r *userRepository) SaveCart(ctx context.Context, user *domain.User) error {
	return r.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		for i := range user.Cart {
			user.Cart[i].ID = 0
			user.Cart[i].UserID = user.ID
		}
		if len(user.Cart) == 0 {
			return nil
		}
		return tx.Create(&user.Cart).Error
	})
}

func (r *userRepository) ClearCart(ctx context.Context, userID uint) error {
	return r.getDB(ctx).WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}

func (r *userRepository) UpdateAddress(ctx context.Context, userID uint, address string) error {
	return r.getDB(ctx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("address", address).Error
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}
