package employees

import (
	"github.com/gin-gonic/gin"

	"opsagent/internal/interfaces/httpserver/handlers/employeehandler"
)

// EmployeesRoute handles HR employee and department routes.
type EmployeesRoute struct {
	handler *employeehandler.EmployeeHandler
}

// NewEmployeesRoute creates a new EmployeesRoute.
func NewEmployeesRoute(handler *employeehandler.EmployeeHandler) *EmployeesRoute {
	return &EmployeesRoute{handler: handler}
}

// RegisterRouter registers employee and department routes on the given router.
func (r *EmployeesRoute) RegisterRouter(router gin.IRouter) {
	employeesGroup := router.Group("/employees")
	{
		employeesGroup.POST("", r.handler.Create)
		employeesGroup.GET("", r.handler.List)
		employeesGroup.GET("/:employee_id", r.handler.Get)
		employeesGroup.PATCH("/:employee_id", r.handler.Update)
		employeesGroup.POST("/:employee_id/terminate", r.handler.Terminate)
	}

	departmentsGroup := router.Group("/departments")
	{
		departmentsGroup.POST("", r.handler.CreateDepartment)
		departmentsGroup.GET("", r.handler.ListDepartments)
	}
}
