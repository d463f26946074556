package client

import (
	"context"
	"time"
)

// ===============================================
// Client Types
// ===============================================

// Status is the lifecycle state of a client account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// ValidStatuses lists the accepted client statuses in a stable order.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusArchived}
}

// Valid reports whether s is a known client status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// Client represents a CRM client account.
type Client struct {
	ID        string    `json:"id"` // "cli_..." secure ID
	Name      string    `json:"name"`
	Email     string    `json:"email"` // unique, stored lowercase
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Balance   float64   `json:"balance"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================================
// Client Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	// GetByEmail matches case-insensitively and returns NotFound when no
	// client carries the email.
	GetByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Client, error)
	Count(ctx context.Context) (int64, error)
}

// ===============================================
// Requests
// ===============================================

// CreateRequest carries the fields accepted when registering a client.
type CreateRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company string  `json:"company"`
	Balance float64 `json:"balance"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Status  *Status `json:"status"`
}
