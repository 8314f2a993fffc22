// Package domain 包含账户服务的领域模型：用户及其内嵌购物车
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User 用户实体，购物车行随用户聚合持久化
type User struct {
	gorm.Model
	Name         string     `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Address      string     `gorm:"column:address;type:varchar(500);default:''" json:"address"`
	Role         Role       `gorm:"column:role;type:varchar(20);default:'user';not null" json:"type"`
	Cart         []CartItem `gorm:"foreignKey:UserID" json:"cart"`
}

func (User) TableName() string { return "users" }

// CartItem 购物车行，商品字段是加入时刻的快照副本，
// 之后目录里的改价改名不回写到已有行
type CartItem struct {
	gorm.Model
	UserID          uint            `gorm:"column:user_id;index;not null" json:"-"`
	ProductID       uint            `gorm:"column:product_id;not null" json:"product_id"`
	ProductName     string          `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price;type:decimal(20,2);not null" json:"product_price"`
	ProductCategory string          `gorm:"column:product_category;type:varchar(100)" json:"product_category"`
	ProductImage    string          `gorm:"column:product_image;type:varchar(500)" json:"product_image"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

// AddProduct 合并购物车行：已有同商品则数量 +1，否则以快照新增一行，数量 1
func (u *User) AddProduct(snapshot ProductSnapshot) {
	for i := range u.Cart {
		if u.Cart[i].ProductID == snapshot.ID {
			u.Cart[i].Quantity++
			return
		}
	}
	u.Cart = append(u.Cart, CartItem{
		UserID:          u.ID,
		ProductID:       snapshot.ID,
		ProductName:     snapshot.Name,
		ProductPrice:    snapshot.Price,
		ProductCategory: snapshot.Category,
		ProductImage:    snapshot.Image,
		Quantity:        1,
	})
}

// RemoveProduct 数量 -1，减到 0 及以下时整行移除。
// 返回 false 表示购物车里没有这件商品。
func (u *User) RemoveProduct(productID uint) bool {
	for i := range u.Cart {
		if u.Cart[i].ProductID != productID {
			continue
		}
		u.Cart[i].Quantity--
		if u.Cart[i].Quantity <= 0 {
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
		}
		return true
	}
	return false
}

// ClearCart 清空购物车
func (u *User) ClearCart() {
	u.Cart = nil
}

// IsAdmin 管理端路由的授权判定
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
