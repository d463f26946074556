package order

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ===============================================
// Order Types
// ===============================================

// Status is the fulfilment state of an order. Transitions are free within
// the enum; only membership is enforced.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ValidStatuses lists the accepted order statuses in a stable order.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus normalizes and validates a status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q (valid: %v)", raw, ValidStatuses())
	}
	return s, nil
}

// Item is a single order line.
type Item struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order represents an ERP sales order.
type Order struct {
	ID        string    `json:"id"` // "ORD-YYYYMMDD-NNN"
	ClientID  string    `json:"client_id"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"` // derived from items on every write
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FormatID renders the canonical order ID for a day and sequence number.
func FormatID(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%03d", day.Format("20060102"), seq)
}

// ===============================================
// Order Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Order, error)
	Count(ctx context.Context) (int64, error)
	// NextSequence returns the next per-day order number, starting at 1.
	NextSequence(ctx context.Context, day time.Time) (int, error)
}

// ===============================================
// Requests
// ===============================================

// CreateRequest carries the fields accepted when placing an order.
type CreateRequest struct {
	ClientID string `json:"client_id"`
	Items    []Item `json:"items"`
}
