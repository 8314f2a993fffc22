package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/retailbackend/internal/catalog/domain"
	"gorm.io/gorm"
)

// likeEscaper 转义 LIKE 通配符，搜索词里的 % 和 _ 按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.getDB(ctx).WithContext(ctx).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.getDB(ctx).WithContext(ctx).Preload("Ratings").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Preload("Ratings").
		Where("category = ?", category).
		Find(&products).Error
	return products, err
}

func (r *productRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Preload("Ratings").
		Where("name LIKE ?", "%"+likeEscaper.Replace(name)+"%").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).WithContext(ctx).Preload("Ratings").Order("id").Find(&products).Error
	return products, err
}

// DeductStock 用单条条件 UPDATE 扣库存，影响行数为 0 即库存不足。
// 扣减与校验在同一语句内完成，并发下单不会把库存扣成负数。
func (r *productRepository) DeductStock(ctx context.Context, id uint, quantity int) error {
	res := r.getDB(ctx).WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) SaveRatings(ctx context.Context, product *domain.Product) error {
	return r.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 物理删除旧行，软删行会撞 (product_id, user_id) 唯一索引
		if err := tx.Unscoped().Where("product_id = ?", product.ID).Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		for i := range product.Ratings {
			product.Ratings[i].ID = 0
			product.Ratings[i].ProductID = product.ID
		}
		if len(product.Ratings) == 0 {
			return nil
		}
		return tx.Create(&product.Ratings).Error
	})
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}
