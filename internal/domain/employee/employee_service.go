package employee

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"opsagent/internal/utils/idgen"
	"opsagent/internal/utils/platformerrors"
)

const (
	idPrefix     = "emp"
	deptIDPrefix = "dep"
	idLength     = 20
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var deptCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`)

// Service handles business logic for HR employees and departments.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates an employee service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "employee-service").Logger(),
	}
}

// CreateEmployee hires a new employee and assigns the next badge number.
func (s *Service) CreateEmployee(ctx context.Context, req *CreateRequest) (*Employee, error) {
	if err := validateCreate(req); err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "employee validation failed", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	id, err := idgen.GenerateSecureID(idPrefix, idLength)
	if err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate employee ID", err)
	}
	num, err := s.repo.NextEmployeeNumber(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to allocate badge number")
	}

	now := time.Now()
	hiredAt := now
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}

	e := &Employee{
		ID:         id,
		EmployeeID: FormatEmployeeID(num),
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		Salary:     req.Salary,
		Status:     StatusActive,
		HiredAt:    hiredAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create employee")
	}

	s.logger.Info().Str("employee_id", e.EmployeeID).Str("department", e.Department).Msg("employee created")
	return e, nil
}

// GetEmployee retrieves an employee by internal ID or badge number.
func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get employee")
	}
	return e, nil
}

// UpdateEmployee applies a partial update. Only non-nil fields change;
// UpdatedAt is always bumped.
func (s *Service) UpdateEmployee(ctx context.Context, id string, req *UpdateRequest) (*Employee, error) {
	if err := validateUpdate(req); err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "employee validation failed", err)
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get employee")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != e.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
		}
		e.Email = email
	}
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		e.Department = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		e.Position = strings.TrimSpace(*req.Position)
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	e.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update employee")
	}

	s.logger.Info().Str("employee_id", e.EmployeeID).Msg("employee updated")
	return e, nil
}

// TerminateEmployee marks an employee terminated. Terminating an already
// terminated employee is a no-op.
func (s *Service) TerminateEmployee(ctx context.Context, id string) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get employee")
	}

	if e.Status == StatusTerminated {
		return e, nil
	}

	e.Status = StatusTerminated
	e.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to terminate employee")
	}

	s.logger.Info().Str("employee_id", e.EmployeeID).Msg("employee terminated")
	return e, nil
}

// ListEmployees returns all employees in creation order.
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list employees")
	}
	return employees, nil
}

// CountEmployees returns the number of stored employees.
func (s *Service) CountEmployees(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count employees")
	}
	return n, nil
}

// CreateDepartment registers a department; codes are unique and normalized
// to uppercase.
func (s *Service) CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) (*Department, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !deptCodePattern.MatchString(code) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, fmt.Sprintf("invalid department code %q", req.Code))
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "department name is required")
	}

	existing, err := s.repo.GetDepartmentByCode(ctx, code)
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check department code")
	}
	if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "department code already exists: "+code)
	}

	id, err := idgen.GenerateSecureID(deptIDPrefix, idLength)
	if err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate department ID", err)
	}

	d := &Department{
		ID:        id,
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateDepartment(ctx, d); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create department")
	}

	s.logger.Info().Str("department", d.Code).Msg("department created")
	return d, nil
}

// ListDepartments returns the department catalog.
func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list departments")
	}
	return departments, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil
		}
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check email uniqueness")
	}
	if existing != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "email already in use: "+email)
	}
	return nil
}

func validateCreate(req *CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return fmt.Errorf("invalid email format: %s", req.Email)
	}
	if strings.TrimSpace(req.Department) == "" {
		return fmt.Errorf("department is required")
	}
	if strings.TrimSpace(req.Position) == "" {
		return fmt.Errorf("position is required")
	}
	if req.Salary < 0 {
		return fmt.Errorf("salary cannot be negative")
	}
	return nil
}

func validateUpdate(req *UpdateRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if req.Email != nil && !emailPattern.MatchString(strings.TrimSpace(*req.Email)) {
		return fmt.Errorf("invalid email format: %s", *req.Email)
	}
	if req.Salary != nil && *req.Salary < 0 {
		return fmt.Errorf("salary cannot be negative")
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("invalid status %q (valid: %v)", *req.Status, ValidStatuses())
	}
	return nil
}
