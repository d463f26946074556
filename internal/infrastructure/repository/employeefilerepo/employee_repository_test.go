package employeefilerepo_test

import (
	"context"
	"testing"
	"time"

	"opsagent/internal/domain/employee"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/infrastructure/repository/employeefilerepo"
	"opsagent/internal/utils/platformerrors"
)

func newRepo(t *testing.T) employee.Repository {
	t.Helper()
	return employeefilerepo.NewEmployeeFileRepository(filestore.NewJSONStore(t.TempDir()))
}

func sampleEmployee(id, badge, email string) *employee.Employee {
	now := time.Now().UTC()
	return &employee.Employee{
		ID:         id,
		EmployeeID: badge,
		Name:       "Jane Doe",
		Email:      email,
		Department: "Fabrication",
		Position:   "Welder",
		Salary:     85000,
		Status:     employee.StatusActive,
		HiredAt:    now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestEmployeeFileRepositoryBothIDFormsResolve(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleEmployee("emp_internal1", "EMP-0001", "jane@corp.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byInternal, err := repo.GetByID(ctx, "emp_internal1")
	if err != nil {
		t.Fatalf("GetByID(internal): %v", err)
	}
	byBadge, err := repo.GetByID(ctx, "EMP-0001")
	if err != nil {
		t.Fatalf("GetByID(badge): %v", err)
	}
	if byInternal.ID != byBadge.ID {
		t.Errorf("lookups disagree: %s vs %s", byInternal.ID, byBadge.ID)
	}
	if _, err := repo.GetByID(ctx, "emp-0001"); err != nil {
		t.Errorf("badge lookup should be case-insensitive: %v", err)
	}
}

func TestEmployeeFileRepositoryGetByEmail(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleEmployee("emp_1", "EMP-0001", "jane@corp.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "JANE@corp.test")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "emp_1" {
		t.Errorf("GetByEmail returned %s, want emp_1", got.ID)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@corp.test"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetByEmail(missing): %v, want not_found", err)
	}
}

func TestEmployeeFileRepositoryNextEmployeeNumber(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	n, err := repo.NextEmployeeNumber(ctx)
	if err != nil {
		t.Fatalf("NextEmployeeNumber on empty store: %v", err)
	}
	if n != 1 {
		t.Errorf("NextEmployeeNumber = %d, want 1", n)
	}

	for i, badge := range []string{"EMP-0001", "EMP-0005"} {
		e := sampleEmployee("emp_"+badge, badge, badge+"@corp.test")
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	n, err = repo.NextEmployeeNumber(ctx)
	if err != nil {
		t.Fatalf("NextEmployeeNumber: %v", err)
	}
	if n != 6 {
		t.Errorf("NextEmployeeNumber = %d, want 6 (numbers are never reused)", n)
	}
}

func TestEmployeeFileRepositoryUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	e := sampleEmployee("emp_1", "EMP-0001", "jane@corp.test")
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	e.Status = employee.StatusTerminated
	if err := repo.Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, "emp_1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != employee.StatusTerminated {
		t.Errorf("Status = %s, want terminated", got.Status)
	}

	missing := sampleEmployee("emp_missing", "EMP-9999", "x@corp.test")
	if err := repo.Update(ctx, missing); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Update of missing employee: %v, want not_found", err)
	}
}

func TestEmployeeFileRepositoryDepartments(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	d := &employee.Department{ID: "dep_1", Code: "FAB", Name: "Fabrication", CreatedAt: time.Now().UTC()}
	if err := repo.CreateDepartment(ctx, d); err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}

	got, err := repo.GetDepartmentByCode(ctx, "fab")
	if err != nil {
		t.Fatalf("GetDepartmentByCode: %v", err)
	}
	if got.Name != "Fabrication" {
		t.Errorf("GetDepartmentByCode returned %+v", got)
	}

	list, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if len(list) != 1 || list[0].Code != "FAB" {
		t.Errorf("ListDepartments = %v", list)
	}

	if _, err := repo.GetDepartmentByCode(ctx, "HR"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetDepartmentByCode(missing): %v, want not_found", err)
	}
}
