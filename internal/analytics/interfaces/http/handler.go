// Package http 经营分析 HTTP 接口层
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/retailbackend/internal/analytics/application"
	"github.com/wyfcoding/retailbackend/pkg/errs"
)

// AnalyticsHandler 经营分析 HTTP 处理器
type AnalyticsHandler struct {
	query *application.EarningsQueryService
}

func NewAnalyticsHandler(query *application.EarningsQueryService) *AnalyticsHandler {
	return &AnalyticsHandler{query: query}
}

// RegisterAdminRoutes 注册管理端分析路由
func (h *AnalyticsHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/analytics", h.Earnings)
}

// Earnings 总销售额与类目分桶
func (h *AnalyticsHandler) Earnings(c *gin.Context) {
	earnings, err := h.query.ComputeEarnings(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "failed to compute earnings", "error", err)
		response.ErrorWithStatus(c, errs.HTTPStatus(err), err.Error(), "")
		return
	}
	response.Success(c, earnings)
}
