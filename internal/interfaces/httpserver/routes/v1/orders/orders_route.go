package orders

import (
	"github.com/gin-gonic/gin"

	"opsagent/internal/interfaces/httpserver/handlers/orderhandler"
)

// OrdersRoute handles ERP order routes.
type OrdersRoute struct {
	handler *orderhandler.OrderHandler
}

// NewOrdersRoute creates a new OrdersRoute.
func NewOrdersRoute(handler *orderhandler.OrderHandler) *OrdersRoute {
	return &OrdersRoute{handler: handler}
}

// RegisterRouter registers order routes on the given router.
func (r *OrdersRoute) RegisterRouter(router gin.IRouter) {
	ordersGroup := router.Group("/orders")
	{
		ordersGroup.POST("", r.handler.Create)
		ordersGroup.GET("", r.handler.List)
		ordersGroup.GET("/:order_id", r.handler.Get)
		ordersGroup.PATCH("/:order_id/status", r.handler.UpdateStatus)
		ordersGroup.DELETE("/:order_id", r.handler.Delete)
	}
}
