//go:build wireinject

package main

import (
	"github.com/google/wire"

	"opsagent/internal/domain"
	"opsagent/internal/infrastructure"
	"opsagent/internal/interfaces"
	"opsagent/internal/interfaces/httpserver/handlers"
	"opsagent/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
