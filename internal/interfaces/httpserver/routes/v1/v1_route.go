package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opsagent/internal/config"
	"opsagent/internal/interfaces/httpserver/routes/v1/agent"
	"opsagent/internal/interfaces/httpserver/routes/v1/clients"
	"opsagent/internal/interfaces/httpserver/routes/v1/employees"
	"opsagent/internal/interfaces/httpserver/routes/v1/orders"
)

type V1Route struct {
	agent     *agent.AgentRoute
	clients   *clients.ClientsRoute
	orders    *orders.OrdersRoute
	employees *employees.EmployeesRoute
}

func NewV1Route(
	agentRoute *agent.AgentRoute,
	clientsRoute *clients.ClientsRoute,
	ordersRoute *orders.OrdersRoute,
	employeesRoute *employees.EmployeesRoute,
) *V1Route {
	return &V1Route{
		agentRoute,
		clientsRoute,
		ordersRoute,
		employeesRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.agent.RegisterRouter(v1Router)
	v1Route.clients.RegisterRouter(v1Router)
	v1Route.orders.RegisterRouter(v1Router)
	v1Route.employees.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the server.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
