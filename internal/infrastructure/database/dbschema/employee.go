package dbschema

import (
	"time"

	"opsagent/internal/domain/employee"
	"opsagent/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Employee{}, Department{})
}

// ===============================================
// Employee Schema
// ===============================================

// Employee represents the database schema for HR employees
type Employee struct {
	BaseModel
	PublicID   string    `gorm:"uniqueIndex;size:64;not null"`
	EmployeeID string    `gorm:"uniqueIndex;size:16;not null"` // EMP-0001 badge
	Name       string    `gorm:"size:255;not null"`
	Email      string    `gorm:"size:255;not null;uniqueIndex"`
	Department string    `gorm:"size:255;not null;index"`
	Position   string    `gorm:"size:255;not null"`
	Salary     float64   `gorm:"not null"`
	Status     string    `gorm:"size:32;not null;index"`
	HiredAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "opsagent.employees"
}

// EtoD converts database schema to domain employee (Entity to Domain)
func (e *Employee) EtoD() *employee.Employee {
	return &employee.Employee{
		ID:         e.PublicID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
		Status:     employee.Status(e.Status),
		HiredAt:    e.HiredAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// EmployeeDtoE converts domain employee to database schema (Domain to Entity)
func EmployeeDtoE(e *employee.Employee) *Employee {
	return &Employee{
		BaseModel: BaseModel{
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
		PublicID:   e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
		Status:     string(e.Status),
		HiredAt:    e.HiredAt,
	}
}

// ===============================================
// Department Schema
// ===============================================

// Department represents the database schema for HR departments
type Department struct {
	BaseModel
	PublicID string `gorm:"uniqueIndex;size:64;not null"`
	Code     string `gorm:"uniqueIndex;size:16;not null"`
	Name     string `gorm:"size:255;not null"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "opsagent.departments"
}

// EtoD converts database schema to domain department (Entity to Domain)
func (d *Department) EtoD() *employee.Department {
	return &employee.Department{
		ID:        d.PublicID,
		Code:      d.Code,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

// DepartmentDtoE converts domain department to database schema (Domain to Entity)
func DepartmentDtoE(d *employee.Department) *Department {
	return &Department{
		BaseModel: BaseModel{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.CreatedAt,
		},
		PublicID: d.ID,
		Code:     d.Code,
		Name:     d.Name,
	}
}
