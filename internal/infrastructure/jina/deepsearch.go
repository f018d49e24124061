package jina

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	domainsearch "github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/metrics"
	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

const (
	streamDataPrefix = "data:"
	streamDoneMarker = "[DONE]"

	// Deep search updates can carry the full accumulated answer.
	streamMaxLineBytes = 10 * 1024 * 1024
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepSearchAPIRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	Stream          bool          `json:"stream"`
	ReasoningEffort string        `json:"reasoning_effort,omitempty"`
	NoDirectAnswer  bool          `json:"no_direct_answer,omitempty"`
}

// streamChunk is one parsed update from the deep search stream. Usage is
// decoded only so it can be dropped explicitly.
type streamChunk struct {
	Content     string                    `json:"content"`
	Annotations []domainsearch.Annotation `json:"annotations"`
	VisitedURLs []string                  `json:"visitedURLs"`
	ReadURLs    []string                  `json:"readURLs"`
	Usage       json.RawMessage           `json:"usage"`
}

// DeepSearch runs a streamed research query to completion and returns the
// final update the provider emitted.
func (c *Client) DeepSearch(ctx context.Context, req domainsearch.DeepSearchRequest) (*domainsearch.DeepSearchResult, error) {
	start := time.Now()

	body := deepSearchAPIRequest{
		Model:           deepSearchModel,
		Messages:        []chatMessage{{Role: "user", Content: req.Query}},
		Stream:          true,
		ReasoningEffort: string(req.ReasoningEffort),
		NoDirectAnswer:  req.NoDirectAnswer,
	}

	request := c.streamClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetDoNotParseResponse(true)
	c.authorize(request)

	resp, err := request.Post(c.cfg.DeepSearchEndpoint)
	if err != nil {
		return nil, upstreamError("deep search request failed", err)
	}
	defer resp.RawBody().Close()

	if resp.IsError() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.RawBody())
		return nil, upstreamStatusError("deep search", resp)
	}

	final, err := collectFinalChunk(resp.RawBody())
	metrics.RecordUpstreamLatency("deepsearch", time.Since(start).Seconds())
	if err != nil {
		return nil, upstreamError("deep search stream failed", err)
	}
	if final == nil {
		return nil, platformerrors.NewError(platformerrors.LayerInfrastructure, platformerrors.ErrorTypeEmptyResponse,
			"deep search stream contained no parseable response", nil)
	}

	return &domainsearch.DeepSearchResult{
		Content:     final.Content,
		Annotations: final.Annotations,
		VisitedURLs: final.VisitedURLs,
		ReadURLs:    final.ReadURLs,
	}, nil
}

// collectFinalChunk folds the event stream into its last successfully parsed
// update. Intermediate updates may be progress-only, so the stream is always
// consumed to the end; each parse success replaces the running value.
// Malformed payloads and the end-of-stream marker are skipped.
func collectFinalChunk(r io.Reader) (*streamChunk, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), streamMaxLineBytes)

	var final *streamChunk
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, streamDataPrefix))
		if payload == "" || payload == streamDoneMarker {
			continue
		}

		chunk := &streamChunk{}
		if err := json.Unmarshal([]byte(payload), chunk); err != nil {
			log.Debug().Err(err).Int("payload_bytes", len(payload)).Msg("skipping malformed deep search chunk")
			continue
		}
		final = chunk
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return final, nil
}
