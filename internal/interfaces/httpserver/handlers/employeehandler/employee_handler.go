package employeehandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/domain/employee"
	"opsagent/internal/interfaces/httpserver/middlewares"
	"opsagent/internal/interfaces/httpserver/requests"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/platformerrors"
)

// EmployeeHandler exposes HR employees and departments over HTTP.
type EmployeeHandler struct {
	employeeService *employee.Service
	logger          zerolog.Logger
}

// NewEmployeeHandler creates the employee handler.
func NewEmployeeHandler(employeeService *employee.Service, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger.With().Str("component", "employee-handler").Logger(),
	}
}

// ListResponse wraps an employee listing.
type ListResponse struct {
	Data  []*employee.Employee `json:"data"`
	Count int                  `json:"count"`
}

// DepartmentListResponse wraps a department listing.
type DepartmentListResponse struct {
	Data  []*employee.Department `json:"data"`
	Count int                    `json:"count"`
}

// Create godoc
// @Summary Hire employee
// @Description Hires a new employee. The next EMP-NNNN badge number is assigned automatically.
// @Tags HR API
// @Accept json
// @Produce json
// @Param request body requests.CreateEmployeeRequest true "Employee to hire"
// @Success 201 {object} employee.Employee
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req requests.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	created, err := h.employeeService.CreateEmployee(c.Request.Context(), &employee.CreateRequest{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
		HiredAt:    req.HiredAt,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create employee")
		return
	}

	h.audit(c, "employee hired", created.EmployeeID)
	c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get employee
// @Description Looks up an employee by internal ID or EMP-NNNN badge number.
// @Tags HR API
// @Produce json
// @Param employee_id path string true "Employee ID or badge number"
// @Success 200 {object} employee.Employee
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/employees/{employee_id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	got, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get employee")
		return
	}
	c.JSON(http.StatusOK, got)
}

// List godoc
// @Summary List employees
// @Description Lists every employee on file, terminated ones included.
// @Tags HR API
// @Produce json
// @Success 200 {object} ListResponse
// @Router /v1/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list employees")
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: employees, Count: len(employees)})
}

// Update godoc
// @Summary Update employee
// @Description Applies a partial update; omitted fields are untouched.
// @Tags HR API
// @Accept json
// @Produce json
// @Param employee_id path string true "Employee ID or badge number"
// @Param request body requests.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} employee.Employee
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/employees/{employee_id} [patch]
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req requests.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	var status *employee.Status
	if req.Status != nil {
		s := employee.Status(*req.Status)
		status = &s
	}

	employeeID := c.Param("employee_id")
	updated, err := h.employeeService.UpdateEmployee(c.Request.Context(), employeeID, &employee.UpdateRequest{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
		Status:     status,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update employee")
		return
	}

	h.audit(c, "employee updated", updated.EmployeeID)
	c.JSON(http.StatusOK, updated)
}

// Terminate godoc
// @Summary Terminate employee
// @Description Marks an employee as terminated. The record and badge number are kept; terminating twice is a no-op.
// @Tags HR API
// @Produce json
// @Param employee_id path string true "Employee ID or badge number"
// @Success 200 {object} employee.Employee
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/employees/{employee_id}/terminate [post]
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	terminated, err := h.employeeService.TerminateEmployee(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to terminate employee")
		return
	}

	h.audit(c, "employee terminated", terminated.EmployeeID)
	c.JSON(http.StatusOK, terminated)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags HR API
// @Accept json
// @Produce json
// @Param request body requests.CreateDepartmentRequest true "Department to register"
// @Success 201 {object} employee.Department
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /v1/departments [post]
func (h *EmployeeHandler) CreateDepartment(c *gin.Context) {
	var req requests.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	created, err := h.employeeService.CreateDepartment(c.Request.Context(), &employee.CreateDepartmentRequest{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create department")
		return
	}

	h.audit(c, "department created", created.Code)
	c.JSON(http.StatusCreated, created)
}

// ListDepartments godoc
// @Summary List departments
// @Tags HR API
// @Produce json
// @Success 200 {object} DepartmentListResponse
// @Router /v1/departments [get]
func (h *EmployeeHandler) ListDepartments(c *gin.Context) {
	departments, err := h.employeeService.ListDepartments(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list departments")
		return
	}
	c.JSON(http.StatusOK, DepartmentListResponse{Data: departments, Count: len(departments)})
}

func (h *EmployeeHandler) audit(c *gin.Context, action, resourceID string) {
	event := h.logger.Info().Str("resource_id", resourceID)
	if principal, ok := middlewares.PrincipalFromContext(c); ok {
		event = event.Str("principal", principal)
	}
	event.Msg(action)
}
