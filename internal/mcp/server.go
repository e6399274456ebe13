// Package mcp exposes label scans and alternative lookups as MCP tools so
// assistant clients can call them over stdio.
package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/pipeline"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

// Server wraps the MCP SDK server around a set of wired services.
type Server struct {
	MCPServer *sdkmcp.Server

	services *svcctx.Services
}

// NewServer creates an MCP server with the scan tools registered.
func NewServer(services *svcctx.Services, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{services: services}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "nutriscan", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logging.New("mcp").Info("starting nutriscan MCP server over stdio",
		"provider", s.services.Provider,
		"model", s.services.Model)
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_label",
		Description: "Analyze a photo of a food ingredient label. Returns the product name, a 1-10 health rating, a short verdict, flagged and beneficial ingredients, and healthier replacements.",
	}, s.handleAnalyzeLabel)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "find_alternatives",
		Description: "Suggest healthier alternatives for a junk food item, each with a reason and an illustration URL.",
	}, s.handleFindAlternatives)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_contract",
		Description: "Return the JSON Schema a reasoning response must match (label_analysis or alternatives).",
	}, s.handleGetContract)
}

// --- Tool input/output types ---

type analyzeLabelInput struct {
	ImagePath   string `json:"image_path,omitempty" jsonschema:"path to a JPG, PNG, WEBP or GIF label photo on the server's filesystem"`
	ImageBase64 string `json:"image_base64,omitempty" jsonschema:"base64-encoded label photo, used when image_path is empty"`
	RequestID   string `json:"request_id,omitempty" jsonschema:"optional correlation id echoed in the result"`
}

type findAlternativesInput struct {
	Query string `json:"query" jsonschema:"name of the junk food item, e.g. Doritos"`
}

type findAlternativesOutput struct {
	Query        string                            `json:"query"`
	Alternatives []nutrition.AlternativeSuggestion `json:"alternatives"`
}

type getContractInput struct {
	Name string `json:"name" jsonschema:"contract name: label_analysis or alternatives"`
}

// --- Tool handlers ---

// Handlers use Out=any, so tools carry no output schema. The response
// contracts are served by get_contract.

func (s *Server) handleAnalyzeLabel(ctx context.Context, _ *sdkmcp.CallToolRequest, input analyzeLabelInput) (*sdkmcp.CallToolResult, any, error) {
	logger := logging.New("mcp-analyze")

	data, err := s.readImage(input)
	if err != nil {
		return nil, nil, err
	}
	if _, err := pipeline.CheckImage(data, s.services.MaxImageBytes); err != nil {
		return nil, nil, err
	}

	if input.RequestID != "" {
		ctx = extract.WithRequestID(ctx, input.RequestID)
	}
	assessment, err := s.services.Analyzer.Analyze(ctx, data)
	if err != nil {
		logger.Warn("analyze_label failed", "error", err)
		return nil, nil, fmt.Errorf("analyze_label: %w", err)
	}
	return nil, assessment, nil
}

func (s *Server) handleFindAlternatives(ctx context.Context, _ *sdkmcp.CallToolRequest, input findAlternativesInput) (*sdkmcp.CallToolResult, any, error) {
	alts, err := s.services.Finder.Find(ctx, input.Query)
	if err != nil {
		logging.New("mcp-alternatives").Warn("find_alternatives failed", "query", input.Query, "error", err)
		return nil, nil, fmt.Errorf("find_alternatives: %w", err)
	}
	return nil, findAlternativesOutput{Query: strings.TrimSpace(input.Query), Alternatives: alts}, nil
}

func (s *Server) handleGetContract(_ context.Context, _ *sdkmcp.CallToolRequest, input getContractInput) (*sdkmcp.CallToolResult, any, error) {
	c, err := schema.Get(input.Name)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(c.Raw())}},
	}, nil, nil
}

// readImage loads the label bytes from exactly one of the two inputs.
func (s *Server) readImage(input analyzeLabelInput) ([]byte, error) {
	switch {
	case input.ImagePath != "" && input.ImageBase64 != "":
		return nil, errors.New("set image_path or image_base64, not both")
	case input.ImagePath != "":
		f, err := os.Open(input.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		limit := s.services.MaxImageBytes
		if limit <= 0 {
			limit = pipeline.DefaultMaxImageBytes
		}
		// One byte over the cap lets CheckImage report the size.
		return io.ReadAll(io.LimitReader(f, limit+1))
	case input.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input.ImageBase64))
		if err != nil {
			return nil, fmt.Errorf("decode image_base64: %w", err)
		}
		return data, nil
	default:
		return nil, extract.ErrEmptyInput
	}
}
