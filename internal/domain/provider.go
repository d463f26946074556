package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"opsagent/internal/config"
	"opsagent/internal/domain/agent"
	"opsagent/internal/domain/client"
	"opsagent/internal/domain/employee"
	"opsagent/internal/domain/order"
	"opsagent/internal/domain/tool"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// CRM domain
	client.NewService,

	// ERP domain
	order.NewService,

	// HR domain
	employee.NewService,

	// Agent domain
	ProvideHistory,
	ProvideDispatcher,
	agent.NewService,
)

// ProvideHistory sizes the in-memory exchange history from configuration.
func ProvideHistory(cfg *config.Config) *agent.History {
	return agent.NewHistory(cfg.AgentHistoryLimit)
}

// ProvideDispatcher builds the dispatch table over the three services.
func ProvideDispatcher(
	registry *tool.Registry,
	clients *client.Service,
	orders *order.Service,
	employees *employee.Service,
	log zerolog.Logger,
) *agent.Dispatcher {
	dispatcher := agent.NewDispatcher(registry, log)
	agent.RegisterBindings(dispatcher, agent.Bindings{
		Clients:   clients,
		Orders:    orders,
		Employees: employees,
	})
	return dispatcher
}
