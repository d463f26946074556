package orderhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/domain/order"
	"opsagent/internal/interfaces/httpserver/middlewares"
	"opsagent/internal/interfaces/httpserver/requests"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/platformerrors"
)

// OrderHandler exposes ERP orders over HTTP.
type OrderHandler struct {
	orderService *order.Service
	logger       zerolog.Logger
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(orderService *order.Service, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.With().Str("component", "order-handler").Logger(),
	}
}

// ListResponse wraps an order listing.
type ListResponse struct {
	Data  []*order.Order `json:"data"`
	Count int            `json:"count"`
}

// Create godoc
// @Summary Place order
// @Description Places a new order. The total is computed from the line items; new orders start as pending.
// @Tags ERP API
// @Accept json
// @Produce json
// @Param request body requests.CreateOrderRequest true "Order to place"
// @Success 201 {object} order.Order
// @Failure 400 {object} responses.ErrorResponse
// @Router /v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req requests.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	items := make([]order.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	created, err := h.orderService.CreateOrder(c.Request.Context(), &order.CreateRequest{
		ClientID: req.ClientID,
		Items:    items,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create order")
		return
	}

	h.audit(c, "order created", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get order
// @Tags ERP API
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/orders/{order_id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	got, err := h.orderService.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get order")
		return
	}
	c.JSON(http.StatusOK, got)
}

// List godoc
// @Summary List orders
// @Tags ERP API
// @Produce json
// @Success 200 {object} ListResponse
// @Router /v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list orders")
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: orders, Count: len(orders)})
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Moves an order to a new status. Rejections name the allowed set.
// @Tags ERP API
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param request body requests.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} order.Order
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/orders/{order_id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req requests.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "request body must carry a status field")
		return
	}

	orderID := c.Param("order_id")
	updated, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		responses.HandleError(c, err, "failed to update order status")
		return
	}

	h.audit(c, "order status updated", updated.ID)
	c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete order
// @Tags ERP API
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/orders/{order_id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID := c.Param("order_id")
	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		responses.HandleError(c, err, "failed to delete order")
		return
	}

	h.audit(c, "order deleted", orderID)
	c.JSON(http.StatusOK, gin.H{"deleted": orderID})
}

func (h *OrderHandler) audit(c *gin.Context, action, resourceID string) {
	event := h.logger.Info().Str("resource_id", resourceID)
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		event = event.Str("principal", principal)
	}
	event.Msg(action)
}
