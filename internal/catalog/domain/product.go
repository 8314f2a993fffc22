// Package domain 包含商品目录服务的领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientStock 库存不足，预扣失败
var ErrInsufficientStock = errors.New("insufficient stock")

// Category 商品类目
type Category string

const (
	CategoryMobiles    Category = "Mobiles"
	CategoryEssentials Category = "Essentials"
	CategoryAppliances Category = "Appliances"
	CategoryBooks      Category = "Books"
	CategoryFashion    Category = "Fashion"
)

// Categories 返回固定类目集合，营收统计按此遍历
func Categories() []Category {
	return []Category{
		CategoryMobiles,
		CategoryEssentials,
		CategoryAppliances,
		CategoryBooks,
		CategoryFashion,
	}
}

// IsValid 判断类目是否在固定集合内
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product 商品实体
// 库存仅由订单预扣变更，评分仅由评分服务变更
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Category    Category        `gorm:"column:category;type:varchar(100);index" json:"category"`
	Images      []string        `gorm:"column:images;serializer:json" json:"images"`
	Ratings     []Rating        `gorm:"foreignKey:ProductID" json:"ratings"`
}

func (Product) TableName() string { return "products" }

// Rating 单个用户对商品的评分，(product_id, user_id) 唯一
type Rating struct {
	gorm.Model
	ProductID uint    `gorm:"column:product_id;uniqueIndex:idx_product_user;not null" json:"-"`
	UserID    uint    `gorm:"column:user_id;uniqueIndex:idx_product_user;not null" json:"user_id"`
	Score     float64 `gorm:"column:score;not null" json:"rating"`
}

func (Rating) TableName() string { return "product_ratings" }

// Rate 合并一个用户评分：先移除该用户已有评分再追加，保证每用户至多一条
func (p *Product) Rate(userID uint, score float64) {
	for i := range p.Ratings {
		if p.Ratings[i].UserID == userID {
			p.Ratings = append(p.Ratings[:i], p.Ratings[i+1:]...)
			break
		}
	}
	p.Ratings = append(p.Ratings, Rating{ProductID: p.ID, UserID: userID, Score: score})
}

// RatingSum 评分总和，每日特惠按总和而非均值排序
func (p *Product) RatingSum() float64 {
	var sum float64
	for i := range p.Ratings {
		sum += p.Ratings[i].Score
	}
	return sum
}

// FirstImage 购物车与订单快照只留首图
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
