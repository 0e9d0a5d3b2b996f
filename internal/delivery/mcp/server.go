// Package mcp exposes the price lookup service over the Model Context
// Protocol so a conversational agent can invoke it as named tools.
package mcp

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/metrics"
	"github.com/pricelens/backend/internal/usecase"
)

const (
	serverName    = "PriceLens"
	serverVersion = "1.0.0"
)

// Server wires the auth and price services into an MCP tool server.
type Server struct {
	auth      *usecase.AuthService
	prices    *usecase.PriceService
	metrics   *metrics.Metrics
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(auth *usecase.AuthService, prices *usecase.PriceService, m *metrics.Metrics) *Server {
	s := &Server{
		auth:    auth,
		prices:  prices,
		metrics: m,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.mcpServer.AddTool(
		mcp.NewTool("validate",
			mcp.WithDescription("Validate the server connection and return the owner phone number"),
		),
		s.toolHandler("validate", s.handleValidate),
	)

	productQuery := func(tool string) mcp.ToolOption {
		return mcp.WithString("product_query",
			mcp.Required(),
			mcp.Description("The product to "+tool+" (e.g. 'amul milk 500ml', 'iPhone 15')"),
		)
	}

	lookupHandler := s.toolHandler("price_comparison", s.handlePriceLookup)
	s.mcpServer.AddTool(
		mcp.NewTool("price_comparison",
			mcp.WithDescription("Compare prices for a product across Amazon, Blinkit, Zepto and Swiggy Instamart"),
			productQuery("compare prices for"),
		),
		lookupHandler,
	)

	// price_search is a naming convenience for the calling agent and behaves
	// identically to price_comparison.
	s.mcpServer.AddTool(
		mcp.NewTool("price_search",
			mcp.WithDescription("Search current prices for a product on Amazon, Blinkit, Zepto and Swiggy Instamart"),
			productQuery("search prices for"),
		),
		s.toolHandler("price_search", s.handlePriceLookup),
	)

	return s
}

// HTTPHandler returns the streamable HTTP transport for mounting under a
// router. The Authorization header is forwarded into the tool context.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithHTTPContextFunc(httpContextFunc),
	)
}

// toolHandler wraps a handler with per-tool accounting.
func (s *Server) toolHandler(name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.metrics.IncToolCall(name)
		return h(ctx, req)
	}
}

// authorize validates the caller's bearer token. A nil result means the
// caller is authorized; otherwise the returned result must be handed back
// without touching the upstream.
func (s *Server) authorize(ctx context.Context) *mcp.CallToolResult {
	if err := s.auth.Validate(AuthTokenFromContext(ctx)); err != nil {
		s.metrics.IncAuthFailure()
		return errorResult("Unauthorized: invalid bearer token.")
	}
	return nil
}

// handleValidate authenticates the caller and returns the owner number.
func (s *Server) handleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if denied := s.authorize(ctx); denied != nil {
		return denied, nil
	}
	return textResult(s.auth.OwnerNumber()), nil
}

// handlePriceLookup serves both price_comparison and price_search. Every
// failure is reported as a tool-level error result, never a protocol fault.
func (s *Server) handlePriceLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if denied := s.authorize(ctx); denied != nil {
		return denied, nil
	}

	args := req.GetArguments()
	if args == nil {
		return errorResult("Missing arguments: product_query is required."), nil
	}
	query, ok := args["product_query"].(string)
	if !ok || query == "" {
		return errorResult("Missing arguments: product_query is required."), nil
	}

	text, err := s.prices.ComparePrices(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return errorResult("Missing arguments: product_query is required."), nil
		}
		log.Printf("[mcp] price lookup failed for %q: %v", query, err)
		return errorResult(usecase.UpstreamFailureMessage), nil
	}
	return textResult(text), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}
