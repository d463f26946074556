package requests

import "time"

// CreateEmployeeRequest hires a new employee.
type CreateEmployeeRequest struct {
	Name       string     `json:"name" binding:"required" example:"Dana Smith"`
	Email      string     `json:"email" binding:"required,email" example:"dana.smith@opsagent.example"`
	Department string     `json:"department" binding:"required" example:"ENG"`
	Position   string     `json:"position" binding:"required" example:"Senior Engineer"`
	Salary     float64    `json:"salary" binding:"gte=0" example:"115000"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
}

// UpdateEmployeeRequest is a partial update; omitted fields are untouched.
type UpdateEmployeeRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty" binding:"omitempty,email"`
	Department *string  `json:"department,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Salary     *float64 `json:"salary,omitempty" binding:"omitempty,gte=0"`
	Status     *string  `json:"status,omitempty" binding:"omitempty,oneof=active on_leave terminated"`
}

// CreateDepartmentRequest registers a department code.
type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required" example:"ENG"`
	Name string `json:"name" binding:"required" example:"Engineering"`
}
