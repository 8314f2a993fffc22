// Package http 订单 HTTP 接口层
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	authhttp "github.com/wyfcoding/retailbackend/internal/auth/interfaces/http"
	"github.com/wyfcoding/retailbackend/internal/order/application"
	"github.com/wyfcoding/retailbackend/internal/order/domain"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	cmd   *application.OrderCommandService
	query *application.OrderQueryService
}

func NewOrderHandler(cmd *application.OrderCommandService, query *application.OrderQueryService) *OrderHandler {
	return &OrderHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册需登录的订单路由
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/order-product", h.PlaceOrder)
	r.GET("/orders/me", h.ListMyOrders)
}

// RegisterAdminRoutes 注册管理端订单路由
func (h *OrderHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/get-orders", h.ListAllOrders)
	r.POST("/change-order-status", h.ChangeStatus)
}

// OrderLineRequest 下单行
type OrderLineRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	Cart       []OrderLineRequest `json:"cart" binding:"required"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Address    string             `json:"address"`
}

// PlaceOrder 以当前购物车内容下单
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]application.OrderLine, 0, len(req.Cart))
	for _, line := range req.Cart {
		lines = append(lines, application.OrderLine{ProductID: line.ID, Quantity: line.Quantity})
	}

	order, err := h.cmd.PlaceOrder(c.Request.Context(), application.PlaceOrderCommand{
		UserID:      authhttp.UserID(c),
		Lines:       lines,
		ClientTotal: req.TotalPrice,
		Address:     req.Address,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to place order", "user_id", authhttp.UserID(c), "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListMyOrders 当前用户订单列表
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.query.ListMyOrders(c.Request.Context(), authhttp.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list orders", "user_id", authhttp.UserID(c), "error", err)
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListAllOrders 管理端全量订单
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.query.ListAllOrders(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "failed to list orders", "error", err)
		response.ErrorWithStatus(c, errs.HTTPStatus(err), err.Error(), "")
		return
	}
	response.Success(c, orders)
}

// ChangeStatusRequest 状态流转请求
type ChangeStatusRequest struct {
	OrderNo string `json:"order_no" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// ChangeStatus 管理端流转订单状态
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	order, err := h.cmd.ChangeStatus(c.Request.Context(), application.ChangeStatusCommand{
		OrderNo: req.OrderNo,
		Status:  domain.Status(req.Status),
	})
	if err != nil {
		logging.Error(c.Request.Context(), "failed to change order status", "order_no", req.OrderNo, "error", err)
		response.ErrorWithStatus(c, errs.HTTPStatus(err), err.Error(), "")
		return
	}
	response.Success(c, order)
}
