package employee

import (
	"context"
	"fmt"
	"time"
)

// ===============================================
// Employee Types
// ===============================================

// Status is the employment state.
type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

// ValidStatuses lists the accepted employee statuses in a stable order.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusOnLeave, StatusTerminated}
}

// Valid reports whether s is a known employee status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

// Employee represents an HR employee record.
type Employee struct {
	ID         string    `json:"id"`          // "emp_..." secure ID
	EmployeeID string    `json:"employee_id"` // "EMP-NNNN" human-readable, unique
	Name       string    `json:"name"`
	Email      string    `json:"email"` // unique, stored lowercase
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Salary     float64   `json:"salary"`
	Status     Status    `json:"status"`
	HiredAt    time.Time `json:"hired_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FormatEmployeeID renders the human-readable badge number.
func FormatEmployeeID(n int) string {
	return fmt.Sprintf("EMP-%04d", n)
}

// Department is a catalog entry; codes are unique and uppercase.
type Department struct {
	ID        string    `json:"id"` // "dep_..." secure ID
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ===============================================
// Employee Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	// GetByID resolves either the internal ID or the EMP-NNNN badge number.
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	List(ctx context.Context) ([]*Employee, error)
	Count(ctx context.Context) (int64, error)
	// NextEmployeeNumber returns the next badge sequence, starting at 1.
	NextEmployeeNumber(ctx context.Context) (int, error)

	CreateDepartment(ctx context.Context, d *Department) error
	GetDepartmentByCode(ctx context.Context, code string) (*Department, error)
	ListDepartments(ctx context.Context) ([]*Department, error)
}

// ===============================================
// Requests
// ===============================================

// CreateRequest carries the fields accepted when hiring an employee.
type CreateRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	HiredAt    *time.Time `json:"hired_at"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary"`
	Status     *Status  `json:"status"`
}

// CreateDepartmentRequest registers a department code.
type CreateDepartmentRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
