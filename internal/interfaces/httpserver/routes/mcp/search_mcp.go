package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/metrics"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

// Tool key constants
const (
	ToolKeySearch     = "search"
	ToolKeyScrape     = "scrape"
	ToolKeyDeepSearch = "deepSearch"
)

// SearchArgs defines the arguments for the search tool
type SearchArgs struct {
	Query string `json:"query" jsonschema:"The search query"`
	Site  string `json:"site,omitempty" jsonschema:"Optional domain to restrict results to (e.g. 'go.dev')"`
}

// ScrapeArgs defines the arguments for the scrape tool
type ScrapeArgs struct {
	URL string `json:"url" jsonschema:"Absolute http(s) URL of the page to read"`
}

// DeepSearchArgs defines the arguments for the deepSearch tool
type DeepSearchArgs struct {
	Query           string `json:"query" jsonschema:"The research question"`
	ReasoningEffort string `json:"reasoning_effort,omitempty" jsonschema:"How much reasoning to spend: low, medium or high"`
	NoDirectAnswer  bool   `json:"no_direct_answer,omitempty" jsonschema:"Force research steps even for trivially answerable queries"`
}

type searchToolPayload struct {
	Results []domainsearch.SearchResult `json:"results"`
}

// SearchMCP handles MCP tool registration for the search tooling.
type SearchMCP struct {
	searchService *domainsearch.SearchService
}

// NewSearchMCP creates a new search MCP handler.
func NewSearchMCP(searchService *domainsearch.SearchService) *SearchMCP {
	return &SearchMCP{
		searchService: searchService,
	}
}

// RegisterTools registers the search, scrape and deepSearch tools with the
// MCP server. Input schemas are inferred from the argument structs, so the
// same declaration drives validation and tool documentation.
func (s *SearchMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeySearch,
		Description: "Search the web and return titles, URLs, descriptions and dates. No page content is fetched.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SearchArgs) (*mcp.CallToolResult, searchToolPayload, error) {
		startTime := time.Now()
		log.Info().
			Str("tool", ToolKeySearch).
			Str("query", input.Query).
			Str("site", input.Site).
			Msg("MCP tool call received")

		if strings.TrimSpace(input.Query) == "" {
			return validationFailure(ToolKeySearch, "query must not be empty", startTime), emptySearchPayload(), nil
		}

		results, err := s.searchService.Search(ctx, domainsearch.SearchRequest{
			Query: input.Query,
			Site:  input.Site,
		})
		if err != nil {
			return toolFailure(ToolKeySearch, err, startTime), emptySearchPayload(), nil
		}
		if results == nil {
			results = []domainsearch.SearchResult{}
		}

		metrics.RecordToolCall(ToolKeySearch, "success", time.Since(startTime).Seconds())
		return nil, searchToolPayload{Results: results}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyScrape,
		Description: "Read a single page through the reader endpoint and return its content as markdown.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ScrapeArgs) (*mcp.CallToolResult, domainsearch.PageContent, error) {
		startTime := time.Now()
		log.Info().
			Str("tool", ToolKeyScrape).
			Str("url", input.URL).
			Msg("MCP tool call received")

		if err := validateURL(input.URL); err != nil {
			return validationFailure(ToolKeyScrape, err.Error(), startTime), domainsearch.PageContent{}, nil
		}

		page, err := s.searchService.ReadPage(ctx, input.URL)
		if err != nil {
			return toolFailure(ToolKeyScrape, err, startTime), domainsearch.PageContent{}, nil
		}

		metrics.RecordToolCall(ToolKeyScrape, "success", time.Since(startTime).Seconds())
		return nil, *page, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyDeepSearch,
		Description: "Run a multi-step research query. Streams intermediate work server-side and returns the final answer with citations and visited URLs.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input DeepSearchArgs) (*mcp.CallToolResult, domainsearch.DeepSearchResult, error) {
		startTime := time.Now()
		log.Info().
			Str("tool", ToolKeyDeepSearch).
			Str("query", input.Query).
			Str("reasoning_effort", input.ReasoningEffort).
			Bool("no_direct_answer", input.NoDirectAnswer).
			Msg("MCP tool call received")

		if strings.TrimSpace(input.Query) == "" {
			return validationFailure(ToolKeyDeepSearch, "query must not be empty", startTime), domainsearch.DeepSearchResult{}, nil
		}
		effort, err := parseReasoningEffort(input.ReasoningEffort)
		if err != nil {
			return validationFailure(ToolKeyDeepSearch, err.Error(), startTime), domainsearch.DeepSearchResult{}, nil
		}

		result, err := s.searchService.DeepSearch(ctx, domainsearch.DeepSearchRequest{
			Query:           input.Query,
			ReasoningEffort: effort,
			NoDirectAnswer:  input.NoDirectAnswer,
		})
		if err != nil {
			return toolFailure(ToolKeyDeepSearch, err, startTime), domainsearch.DeepSearchResult{}, nil
		}

		metrics.RecordToolCall(ToolKeyDeepSearch, "success", time.Since(startTime).Seconds())
		return nil, *result, nil
	})
}

// validateURL checks that raw is an absolute http(s) URL with a host.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: only http and https are supported", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", raw)
	}
	return nil
}

func parseReasoningEffort(raw string) (domainsearch.ReasoningEffort, error) {
	switch domainsearch.ReasoningEffort(raw) {
	case "", domainsearch.EffortLow, domainsearch.EffortMedium, domainsearch.EffortHigh:
		return domainsearch.ReasoningEffort(raw), nil
	default:
		return "", fmt.Errorf("invalid reasoning_effort %q: want low, medium or high", raw)
	}
}

func validationFailure(tool, message string, startTime time.Time) *mcp.CallToolResult {
	metrics.RecordToolCall(tool, "validation_error", time.Since(startTime).Seconds())
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s: %s", tool, message)}},
		IsError: true,
	}
}

func toolFailure(tool string, err error, startTime time.Time) *mcp.CallToolResult {
	metrics.RecordToolCall(tool, "error", time.Since(startTime).Seconds())
	platformerrors.LogError(log.With().Str("tool", tool).Logger(),
		platformerrors.AsError(platformerrors.LayerRoute, err, "tool call failed"))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%s: %s", tool, err.Error())}},
		IsError: true,
	}
}

// emptySearchPayload keeps error results valid against the inferred output
// schema, which requires a results array.
func emptySearchPayload() searchToolPayload {
	return searchToolPayload{Results: []domainsearch.SearchResult{}}
}
