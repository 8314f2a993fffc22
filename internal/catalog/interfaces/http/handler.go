// Package http 商品目录 HTTP 接口层
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	authhttp "github.com/wyfcoding/retailbackend/internal/auth/interfaces/http"
	"github.com/wyfcoding/retailbackend/internal/catalog/application"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

func NewCatalogHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册需登录的商品路由
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/products", h.ListByCategory)
	r.GET("/products/search/:name", h.Search)
	r.POST("/rate-product", h.RateProduct)
	r.GET("/deal-of-the-day", h.DealOfTheDay)
}

// RegisterAdminRoutes 注册管理端商品路由
func (h *CatalogHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/add-product", h.AddProduct)
	r.GET("/get-products", h.ListAll)
	r.POST("/update-product", h.UpdateProduct)
}

// ListByCategory 按类目列出商品
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	products, err := h.query.ListByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list products", "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Search 按名称子串检索商品
func (h *CatalogHandler) Search(c *gin.Context) {
	products, err := h.query.SearchByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to search products", "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// RateProductRequest 评分请求
type RateProductRequest struct {
	ID     uint     `json:"id" binding:"required"`
	Rating *float64 `json:"rating" binding:"required"`
}

// RateProduct 提交或覆盖当前用户对商品的评分
func (h *CatalogHandler) RateProduct(c *gin.Context) {
	var req RateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.cmd.RateProduct(c.Request.Context(), application.RateProductCommand{
		ProductID: req.ID,
		UserID:    authhttp.UserID(c),
		Score:     *req.Rating,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to rate product", "product_id", req.ID, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// DealOfTheDay 返回评分总和最高的商品
func (h *CatalogHandler) DealOfTheDay(c *gin.Context) {
	product, err := h.query.DealOfTheDay(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "failed to compute deal of the day", "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ProductRequest 管理端商品增改请求
type ProductRequest struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// AddProduct 管理端新增商品
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.cmd.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Quantity,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to add product", "name", req.Name, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct 管理端更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	product, err := h.cmd.UpdateProduct(c.Request.Context(), application.UpdateProductCommand{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Quantity,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to update product", "product_id", req.ID, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListAll 管理端列出全部商品
func (h *CatalogHandler) ListAll(c *gin.Context) {
	products, err := h.query.ListAll(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list products", "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}
