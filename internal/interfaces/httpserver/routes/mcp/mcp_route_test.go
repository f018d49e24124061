package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainsearch "github.com/MartinSchlott/SimpleMCPSearchServer/internal/domain/search"
	"github.com/MartinSchlott/SimpleMCPSearchServer/internal/infrastructure/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Name: "mcp-search", Version: "1.0.0", Transport: "http", Port: 3123}
	route := NewMCPRoute(cfg, NewSearchMCP(domainsearch.NewSearchService(&stubSearchClient{})))

	router := gin.New()
	route.RegisterRouter(router.Group(""))
	return router
}

func TestMCPEndpointRejectsNonPostVerbs(t *testing.T) {
	router := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/mcp", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s /mcp: expected 405, got %d", method, rec.Code)
		}

		var body struct {
			JSONRPC string `json:"jsonrpc"`
			Error   struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s /mcp: invalid JSON body: %v", method, err)
		}
		if body.JSONRPC != "2.0" {
			t.Errorf("%s /mcp: expected jsonrpc 2.0, got %q", method, body.JSONRPC)
		}
		if body.Error.Code != -32601 {
			t.Errorf("%s /mcp: expected code -32601, got %d", method, body.Error.Code)
		}
		if body.Error.Message != "Method not allowed" {
			t.Errorf("%s /mcp: unexpected message %q", method, body.Error.Message)
		}
		if string(body.ID) != "null" {
			t.Errorf("%s /mcp: expected null id, got %s", method, body.ID)
		}
	}
}

func TestMCPMethodGuardRejectsBadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", "{"},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
		{"unsupported method", `{"jsonrpc":"2.0","method":"resources/list","id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMCPMethodGuardPassesAllowedMethods(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","method":"ping","id":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ping, got %d (body %s)", rec.Code, rec.Body.String())
	}
}
