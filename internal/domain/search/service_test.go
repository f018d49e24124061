package search

import (
	"context"
	"errors"
	"testing"

	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

type failingClient struct {
	err error
}

func (c failingClient) Search(context.Context, SearchRequest) ([]SearchResult, error) {
	return nil, c.err
}

func (c failingClient) ReadPage(context.Context, string) (*PageContent, error) {
	return nil, c.err
}

func (c failingClient) DeepSearch(context.Context, DeepSearchRequest) (*DeepSearchResult, error) {
	return nil, c.err
}

func TestServiceWrapsClientErrorsAtDomainLayer(t *testing.T) {
	upstream := platformerrors.NewError(platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeUpstream, "search API error: 502 Bad Gateway", nil)
	svc := NewSearchService(failingClient{err: upstream})

	_, err := svc.Search(context.Background(), SearchRequest{Query: "anything"})
	if err == nil {
		t.Fatal("expected error from failing client")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUpstream) {
		t.Errorf("error type not preserved: %v", err)
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected PlatformError, got %T", err)
	}
	if platformErr.Layer != platformerrors.LayerDomain {
		t.Errorf("expected domain layer, got %q", platformErr.Layer)
	}
}

func TestServicePreservesEmptyResponseType(t *testing.T) {
	empty := platformerrors.NewError(platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeEmptyResponse, "deep search stream contained no parseable response", nil)
	svc := NewSearchService(failingClient{err: empty})

	_, err := svc.DeepSearch(context.Background(), DeepSearchRequest{Query: "anything"})
	if err == nil {
		t.Fatal("expected error from failing client")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeEmptyResponse) {
		t.Errorf("error type not preserved: %v", err)
	}
}
