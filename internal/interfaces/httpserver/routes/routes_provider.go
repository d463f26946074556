package routes

import (
	"github.com/google/wire"

	v1 "opsagent/internal/interfaces/httpserver/routes/v1"
	"opsagent/internal/interfaces/httpserver/routes/v1/agent"
	"opsagent/internal/interfaces/httpserver/routes/v1/clients"
	"opsagent/internal/interfaces/httpserver/routes/v1/employees"
	"opsagent/internal/interfaces/httpserver/routes/v1/orders"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	agent.NewAgentRoute,
	clients.NewClientsRoute,
	orders.NewOrdersRoute,
	employees.NewEmployeesRoute,
)
