package jina

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	domainsearch "github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/metrics"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

const (
	searchEndpointDefault     = "https://s.jina.ai/"
	readerEndpointDefault     = "https://r.jina.ai/"
	deepSearchEndpointDefault = "https://deepsearch.jina.ai/v1/chat/completions"

	deepSearchModel = "jina-deepsearch-v1"
	userAgent       = "SimpleMCPSearchServer/1.0"
)

// ClientConfig captures the knobs exposed for the Jina client. Endpoint
// overrides exist for tests; production uses the defaults.
type ClientConfig struct {
	APIKey             string
	SearchEndpoint     string
	ReaderEndpoint     string
	DeepSearchEndpoint string
	HTTPTimeout        time.Duration
}

// Client implements domainsearch.SearchClient against the Jina AI APIs.
// It holds only immutable configuration; every call builds fresh request
// state, so concurrent use is safe.
type Client struct {
	cfg        ClientConfig
	httpClient *resty.Client
	// Deep search streams for minutes; it gets a client without an overall
	// timeout and inherits only the request context's lifetime.
	streamClient *resty.Client
}

var _ domainsearch.SearchClient = (*Client)(nil)

// NewClient wires the HTTP clients for the Jina search, reader and deep
// search endpoints.
func NewClient(cfg ClientConfig) *Client {
	if strings.TrimSpace(cfg.SearchEndpoint) == "" {
		cfg.SearchEndpoint = searchEndpointDefault
	}
	if strings.TrimSpace(cfg.ReaderEndpoint) == "" {
		cfg.ReaderEndpoint = readerEndpointDefault
	}
	if strings.TrimSpace(cfg.DeepSearchEndpoint) == "" {
		cfg.DeepSearchEndpoint = deepSearchEndpointDefault
	}

	httpTimeout := 30 * time.Second
	if cfg.HTTPTimeout > 0 {
		httpTimeout = cfg.HTTPTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:      100,
		MaxConnsPerHost:   50,
		IdleConnTimeout:   90 * time.Second,
		ForceAttemptHTTP2: true,
	}

	return &Client{
		cfg: cfg,
		httpClient: resty.New().
			SetHeader("User-Agent", userAgent).
			SetTimeout(httpTimeout).
			SetRetryCount(0).
			SetTransport(transport),
		streamClient: resty.New().
			SetHeader("User-Agent", userAgent).
			SetRetryCount(0),
	}
}

type searchAPIResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Date        string `json:"date"`
	// Usage and other provider metering fields are deliberately not mapped.
}

type searchAPIResponse struct {
	Code   int               `json:"code"`
	Status any               `json:"status"`
	Data   []searchAPIResult `json:"data"`
}

// Search performs a single web search. Exactly one attempt, no retry.
func (c *Client) Search(ctx context.Context, req domainsearch.SearchRequest) ([]domainsearch.SearchResult, error) {
	start := time.Now()

	var result searchAPIResponse
	request := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", req.Query).
		SetHeader("Accept", "application/json").
		SetHeader("X-Respond-With", "no-content").
		SetResult(&result)
	c.authorize(request)
	if req.Site != "" {
		request.SetHeader("X-Site", req.Site)
	}

	resp, err := request.Get(c.cfg.SearchEndpoint)
	metrics.RecordUpstreamLatency("search", time.Since(start).Seconds())
	if err != nil {
		return nil, upstreamError("search request failed", err)
	}
	if resp.IsError() {
		return nil, upstreamStatusError("search", resp)
	}

	results := make([]domainsearch.SearchResult, 0, len(result.Data))
	for _, item := range result.Data {
		results = append(results, domainsearch.SearchResult{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
			Date:        item.Date,
		})
	}
	return results, nil
}

type readerAPIResponse struct {
	Code   int `json:"code"`
	Status any `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Content     string `json:"content"`
	} `json:"data"`
}

// ReadPage fetches a single page through the reader endpoint. The target URL
// is percent-encoded into the request path.
func (c *Client) ReadPage(ctx context.Context, target string) (*domainsearch.PageContent, error) {
	start := time.Now()

	var result readerAPIResponse
	request := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&result)
	c.authorize(request)

	resp, err := request.Get(c.cfg.ReaderEndpoint + url.PathEscape(target))
	metrics.RecordUpstreamLatency("read", time.Since(start).Seconds())
	if err != nil {
		return nil, upstreamError("read request failed", err)
	}
	if resp.IsError() {
		return nil, upstreamStatusError("read", resp)
	}

	return &domainsearch.PageContent{
		Title:       result.Data.Title,
		Description: result.Data.Description,
		URL:         result.Data.URL,
		Content:     result.Data.Content,
	}, nil
}

func (c *Client) authorize(request *resty.Request) {
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		request.SetHeader("Authorization", "Bearer "+c.cfg.APIKey)
	}
}

func upstreamError(message string, err error) error {
	return platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUpstream, message, err)
}

func upstreamStatusError(operation string, resp *resty.Response) error {
	return platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUpstream,
		fmt.Sprintf("%s API error: %s", operation, resp.Status()), nil)
}
