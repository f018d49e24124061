package search

import (
	"context"

	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

// SearchClient defines the provider operations required by the domain layer.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
	ReadPage(ctx context.Context, url string) (*PageContent, error)
	DeepSearch(ctx context.Context, req DeepSearchRequest) (*DeepSearchResult, error)
}

// SearchService orchestrates MCP operations against the configured provider
// while remaining transport-agnostic.
type SearchService struct {
	client SearchClient
}

// NewSearchService creates a new search service.
func NewSearchService(client SearchClient) *SearchService {
	return &SearchService{
		client: client,
	}
}

// Search performs a single web search.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	results, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, platformerrors.AsError(platformerrors.LayerDomain, err, "search failed")
	}
	return results, nil
}

// ReadPage fetches one page and returns its extracted content.
func (s *SearchService) ReadPage(ctx context.Context, url string) (*PageContent, error) {
	page, err := s.client.ReadPage(ctx, url)
	if err != nil {
		return nil, platformerrors.AsError(platformerrors.LayerDomain, err, "read page failed")
	}
	return page, nil
}

// DeepSearch runs a streamed multi-step research query to completion.
func (s *SearchService) DeepSearch(ctx context.Context, req DeepSearchRequest) (*DeepSearchResult, error) {
	result, err := s.client.DeepSearch(ctx, req)
	if err != nil {
		return nil, platformerrors.AsError(platformerrors.LayerDomain, err, "deep search failed")
	}
	return result, nil
}
