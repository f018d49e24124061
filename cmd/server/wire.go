//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/interfaces/httpserver/routes"
)

func CreateApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		routes.RoutesProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
