package requests

// OrderItemRequest is one order line.
type OrderItemRequest struct {
	Description string  `json:"description" binding:"required" example:"steel beams"`
	Quantity    int     `json:"quantity" binding:"required,gte=1" example:"3"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0" example:"25.10"`
}

// CreateOrderRequest places a new order for a client.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id" binding:"required"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to a new status. Enum membership
// is checked by the domain layer so rejections name the allowed set.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"shipped"`
}
