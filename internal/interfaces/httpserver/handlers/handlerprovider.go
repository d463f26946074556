package handlers

import (
	"github.com/google/wire"

	"opsagent/internal/interfaces/httpserver/handlers/agenthandler"
	"opsagent/internal/interfaces/httpserver/handlers/clienthandler"
	"opsagent/internal/interfaces/httpserver/handlers/employeehandler"
	"opsagent/internal/interfaces/httpserver/handlers/orderhandler"
)

var HandlerProvider = wire.NewSet(
	agenthandler.NewAgentHandler,
	clienthandler.NewClientHandler,
	orderhandler.NewOrderHandler,
	employeehandler.NewEmployeeHandler,
)
