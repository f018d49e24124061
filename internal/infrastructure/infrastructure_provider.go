package infrastructure

import (
	"github.com/google/wire"

	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
	jinaclient "github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/jina"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	ProvideSearchClient,
)

// ProvideSearchClient provides the provider adapter backed by the Jina APIs
func ProvideSearchClient(cfg *config.Config) search.SearchClient {
	return jinaclient.NewClient(jinaclient.ClientConfig{
		APIKey: cfg.APIKeys.Jina,
	})
}
