// Package http 账户 HTTP 接口层
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/retailbackend/internal/account/application"
	authhttp "github.com/wyfcoding/retailbackend/internal/auth/interfaces/http"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// AccountHandler 账户 HTTP 处理器
type AccountHandler struct {
	cmd      *application.AccountCommandService
	cart     *application.CartService
	verifier authhttp.TokenVerifier
}

func NewAccountHandler(cmd *application.AccountCommandService, cart *application.CartService, verifier authhttp.TokenVerifier) *AccountHandler {
	return &AccountHandler{cmd: cmd, cart: cart, verifier: verifier}
}

// RegisterPublicRoutes 注册无需登录的账户路由
func (h *AccountHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
}

// RegisterRootRoutes 注册根路径路由，tokenIsValid 历史上不带 /api 前缀
func (h *AccountHandler) RegisterRootRoutes(r gin.IRoutes) {
	r.POST("/tokenIsValid", h.TokenIsValid)
}

// RegisterRoutes 注册需登录的账户路由
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Me)
	r.POST("/save-user-address", h.SaveAddress)
	r.POST("/add-to-cart", h.AddToCart)
	r.DELETE("/remove-from-cart/:id", h.RemoveFromCart)
}

// SignUpRequest 注册请求
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp 用户注册
func (h *AccountHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.cmd.SignUp(c.Request.Context(), application.SignUpCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to sign up", "email", req.Email, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 用户登录，响应为令牌平铺用户字段
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.cmd.Login(c.Request.Context(), application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to log in", "email", req.Email, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"id":         result.User.ID,
		"name":       result.User.Name,
		"email":      result.User.Email,
		"address":    result.User.Address,
		"type":       result.User.Role,
		"cart":       result.User.Cart,
	})
}

// TokenIsValid 校验令牌，裸布尔响应
func (h *AccountHandler) TokenIsValid(c *gin.Context) {
	_, err := h.verifier.Verify(c.Request.Context(), authhttp.ExtractToken(c))
	c.JSON(http.StatusOK, err == nil)
}

// Me 返回当前用户与其令牌
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.cmd.GetUser(c.Request.Context(), authhttp.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to load user", "user_id", authhttp.UserID(c), "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"address": user.Address,
		"type":    user.Role,
		"cart":    user.Cart,
		"token":   authhttp.Token(c),
	})
}

// SaveAddressRequest 收货地址请求
type SaveAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// SaveAddress 覆盖当前用户收货地址
func (h *AccountHandler) SaveAddress(c *gin.Context) {
	var req SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.cmd.SaveAddress(c.Request.Context(), authhttp.UserID(c), req.Address)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to save address", "user_id", authhttp.UserID(c), "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// AddToCartRequest 加购请求
type AddToCartRequest struct {
	ID uint `json:"id" binding:"required"`
}

// AddToCart 当前用户加购一件商品
func (h *AccountHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.cart.AddToCart(c.Request.Context(), authhttp.UserID(c), req.ID)
	if err != nil {
		logging.Error(c.Request.Context(), "failed to add to cart", "product_id", req.ID, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product added to cart", "cart": cart})
}

// RemoveFromCart 当前用户减购一件商品
func (h *AccountHandler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	cart, err := h.cart.RemoveFromCart(c.Request.Context(), authhttp.UserID(c), uint(productID))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to remove from cart", "product_id", productID, "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed from cart", "cart": cart})
}
