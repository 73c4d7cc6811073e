package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/service"
)

// OrderController eBay 订单查询 (只读透传)
type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ListOrders 订单列表
// @Summary 获取 eBay 订单列表 (原样透传)
// @Tags Order
// @Param limit query int false "每页数量" default(50)
// @Param offset query int false "偏移量" default(0)
// @Router /api/ebay-orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := ctrl.orderService.ListOrders(c.Request.Context(), 0, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}

// GetOrder 订单详情
// @Summary 获取单笔订单详情 (原样透传)
// @Tags Order
// @Param orderId path string true "eBay 订单 ID"
// @Router /api/ebay-orders/{orderId} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.orderService.GetOrder(c.Request.Context(), 0, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}
