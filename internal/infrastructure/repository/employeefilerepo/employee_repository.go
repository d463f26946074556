package employeefilerepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"opsagent/internal/domain/employee"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/utils/platformerrors"
)

const (
	employeeCollection   = "employees"
	departmentCollection = "departments"
)

// EmployeeFileRepository keeps employees and departments in JSON files.
type EmployeeFileRepository struct {
	mu    sync.RWMutex
	store filestore.Store
}

var _ employee.Repository = (*EmployeeFileRepository)(nil)

func NewEmployeeFileRepository(store filestore.Store) employee.Repository {
	return &EmployeeFileRepository{store: store}
}

// Create implements employee.Repository.
func (repo *EmployeeFileRepository) Create(ctx context.Context, e *employee.Employee) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return err
	}
	items = append(items, *e)
	return repo.saveEmployees(ctx, items)
}

// GetByID implements employee.Repository. Both the internal ID and the
// EMP-#### badge resolve.
func (repo *EmployeeFileRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id || strings.EqualFold(items[i].EmployeeID, id) {
			e := items[i]
			return &e, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee %s not found", id))
}

// GetByEmail implements employee.Repository.
func (repo *EmployeeFileRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(items[i].Email, email) {
			e := items[i]
			return &e, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee with email %s not found", email))
}

// Update implements employee.Repository.
func (repo *EmployeeFileRepository) Update(ctx context.Context, e *employee.Employee) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == e.ID {
			items[i] = *e
			return repo.saveEmployees(ctx, items)
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("employee %s not found", e.ID))
}

// List implements employee.Repository.
func (repo *EmployeeFileRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*employee.Employee, len(items))
	for i := range items {
		e := items[i]
		result[i] = &e
	}
	return result, nil
}

// Count implements employee.Repository.
func (repo *EmployeeFileRepository) Count(ctx context.Context) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// NextEmployeeNumber implements employee.Repository. Derived from the badges
// already on disk; terminated employees keep their number reserved.
func (repo *EmployeeFileRepository) NextEmployeeNumber(ctx context.Context) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadEmployees(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for i := range items {
		rest, ok := strings.CutPrefix(items[i].EmployeeID, "EMP-")
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
func (repo *EmployeeFileRepository) CreateDepartment(ctx context.Context, d *employee.Department) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.loadDepartments(ctx)
	if err != nil {
		return err
	}
	items = append(items, *d)
	return repo.saveDepartments(ctx, items)
}

// GetDepartmentByCode implements employee.Repository.
func (repo *EmployeeFileRepository) GetDepartmentByCode(ctx context.Context, code string) (*employee.Department, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadDepartments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(items[i].Code, code) {
			d := items[i]
			return &d, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("department %s not found", code))
}

// ListDepartments implements employee.Repository.
func (repo *EmployeeFileRepository) ListDepartments(ctx context.Context) ([]*employee.Department, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.loadDepartments(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*employee.Department, len(items))
	for i := range items {
		d := items[i]
		result[i] = &d
	}
	return result, nil
}

func (repo *EmployeeFileRepository) loadEmployees(ctx context.Context) ([]employee.Employee, error) {
	var items []employee.Employee
	if err := repo.store.Read(ctx, employeeCollection, &items); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load employees")
	}
	return items, nil
}

func (repo *EmployeeFileRepository) saveEmployees(ctx context.Context, items []employee.Employee) error {
	if err := repo.store.Write(ctx, employeeCollection, items); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save employees")
	}
	return nil
}

func (repo *EmployeeFileRepository) loadDepartments(ctx context.Context) ([]employee.Department, error) {
	var items []employee.Department
	if err := repo.store.Read(ctx, departmentCollection, &items); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load departments")
	}
	return items, nil
}

func (repo *EmployeeFileRepository) saveDepartments(ctx context.Context, items []employee.Department) error {
	if err := repo.store.Write(ctx, departmentCollection, items); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save departments")
	}
	return nil
}
