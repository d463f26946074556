package employeerepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsagent/internal/domain/employee"
	"opsagent/internal/infrastructure/database/dbschema"
	"opsagent/internal/utils/platformerrors"
)

type EmployeeGormRepository struct {
	db *gorm.DB
}

var _ employee.Repository = (*EmployeeGormRepository)(nil)

func NewEmployeeGormRepository(db *gorm.DB) employee.Repository {
	return &EmployeeGormRepository{db: db}
}

// Create implements employee.Repository.
func (repo *EmployeeGormRepository) Create(ctx context.Context, e *employee.Employee) error {
	row := dbschema.EmployeeDtoE(e)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create employee")
	}
	e.CreatedAt = row.CreatedAt
	e.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByID implements employee.Repository. Both the internal ID and the
// EMP-#### badge resolve.
func (repo *EmployeeGormRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	var row dbschema.Employee
	err := repo.db.WithContext(ctx).
		Where("public_id = ? OR employee_id = ?", id, strings.ToUpper(id)).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee %s not found", id))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find employee by ID")
	}
	return row.EtoD(), nil
}

// GetByEmail implements employee.Repository.
func (repo *EmployeeGormRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var row dbschema.Employee
	err := repo.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee with email %s not found", email))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find employee by email")
	}
	return row.EtoD(), nil
}

// Update implements employee.Repository.
func (repo *EmployeeGormRepository) Update(ctx context.Context, e *employee.Employee) error {
	row := dbschema.EmployeeDtoE(e)
	row.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).Model(&dbschema.Employee{}).
		Where("public_id = ?", e.ID).
		Updates(map[string]interface{}{
			"name":       row.Name,
			"email":      row.Email,
			"department": row.Department,
			"position":   row.Position,
			"salary":     row.Salary,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})

	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to update employee")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee %s not found", e.ID))
	}

	e.UpdatedAt = row.UpdatedAt
	return nil
}

// List implements employee.Repository.
func (repo *EmployeeGormRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var rows []dbschema.Employee
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list employees")
	}

	result := make([]*employee.Employee, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// Count implements employee.Repository.
func (repo *EmployeeGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&dbschema.Employee{}).Count(&total).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count employees")
	}
	return total, nil
}

// NextEmployeeNumber implements employee.Repository.
func (repo *EmployeeGormRepository) NextEmployeeNumber(ctx context.Context) (int, error) {
	var badges []string
	err := repo.db.WithContext(ctx).Model(&dbschema.Employee{}).
		Pluck("employee_id", &badges).Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to read employee numbers")
	}

	max := 0
	for _, badge := range badges {
		rest, ok := strings.CutPrefix(badge, "EMP-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// CreateDepartment implements employee.Repository.
func (repo *EmployeeGormRepository) CreateDepartment(ctx context.Context, d *employee.Department) error {
	row := dbschema.DepartmentDtoE(d)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create department")
	}
	d.CreatedAt = row.CreatedAt
	return nil
}

// GetDepartmentByCode implements employee.Repository.
func (repo *EmployeeGormRepository) GetDepartmentByCode(ctx context.Context, code string) (*employee.Department, error) {
	var row dbschema.Department
	err := repo.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?)", code).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("department %s not found", code))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find department by code")
	}
	return row.EtoD(), nil
}

// ListDepartments implements employee.Repository.
func (repo *EmployeeGormRepository) ListDepartments(ctx context.Context) ([]*employee.Department, error) {
	var rows []dbschema.Department
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list departments")
	}

	result := make([]*employee.Department, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}
