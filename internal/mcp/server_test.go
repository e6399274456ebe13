package mcp_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	mcpserver "github.com/Aayushman-oss/nutriscan-ai/internal/mcp"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

const colaResponse = `{"productIdentified":"Cola","healthRating":2,"verdict":"Avoid","psychologicalInsights":["Sweetness is comforting.","Fizz feels refreshing."],"badIngredients":[{"name":"High-fructose corn syrup","explanation":"a cheap sugar that spikes blood sugar fast"}],"goodIngredients":[],"healthyReplacements":["sparkling water with fruit"]}`

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestServer(t *testing.T) (*mcpserver.Server, *providers.MockClient) {
	t.Helper()
	mock := providers.NewMockClient()
	reg := providers.NewRegistry()
	reg.RegisterLLM("gemini", mock)

	cfg := config.DefaultConfig()
	cfg.Pipeline.MaxImageBytes = 1024
	svc, err := svcctx.New(cfg, reg, nil)
	if err != nil {
		t.Fatalf("svcctx.New() error = %v", err)
	}
	return mcpserver.NewServer(svc, "test"), mock
}

func connectInMemory(t *testing.T, ctx context.Context, srv *mcpserver.Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	serverSession, err := srv.MCPServer.Connect(ctx, t1, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	var text strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}
	return text.String(), res.IsError
}

func TestListTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	got := make(map[string]bool)
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, want := range []string{"analyze_label", "find_alternatives", "get_contract"} {
		if !got[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestAnalyzeLabel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("base64 image", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ResponseText = colaResponse
		session := connectInMemory(t, ctx, srv)

		text, isErr := callTool(t, ctx, session, "analyze_label", map[string]any{
			"image_base64": base64.StdEncoding.EncodeToString(pngHeader),
			"request_id":   "mcp-1",
		})
		if isErr {
			t.Fatalf("analyze_label returned error: %s", text)
		}

		var got nutrition.Assessment
		if err := json.Unmarshal([]byte(text), &got); err != nil {
			t.Fatalf("result is not an assessment: %v\n%s", err, text)
		}
		if got.ProductIdentified != "Cola" || got.VerdictTier != nutrition.TierPoor {
			t.Errorf("unexpected assessment: %+v", got)
		}
		if got.RequestID != "mcp-1" {
			t.Errorf("RequestID = %q, want mcp-1", got.RequestID)
		}
	})

	t.Run("image path", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ResponseText = colaResponse
		session := connectInMemory(t, ctx, srv)

		path := filepath.Join(t.TempDir(), "label.png")
		if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
			t.Fatal(err)
		}
		text, isErr := callTool(t, ctx, session, "analyze_label", map[string]any{"image_path": path})
		if isErr {
			t.Fatalf("analyze_label returned error: %s", text)
		}
		if mock.RequestCount() != 1 {
			t.Errorf("RequestCount() = %d, want 1", mock.RequestCount())
		}
	})

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{"no image", map[string]any{}, "empty input"},
		{"both inputs", map[string]any{"image_path": "/x.png", "image_base64": "AAAA"}, "not both"},
		{"bad base64", map[string]any{"image_base64": "%%%"}, "decode image_base64"},
		{"not an image", map[string]any{"image_base64": base64.StdEncoding.EncodeToString([]byte("plain text label"))}, "unsupported image type"},
		{"missing file", map[string]any{"image_path": "/definitely/not/here.png"}, "open image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := newTestServer(t)
			session := connectInMemory(t, ctx, srv)

			text, isErr := callTool(t, ctx, session, "analyze_label", tt.args)
			if !isErr {
				t.Fatalf("expected IsError=true, got %s", text)
			}
			if !strings.Contains(text, tt.wantErr) {
				t.Errorf("error text = %q, want it to contain %q", text, tt.wantErr)
			}
			if mock.RequestCount() != 0 {
				t.Error("reasoning service should not be called")
			}
		})
	}

	t.Run("contract violation", func(t *testing.T) {
		srv, mock := newTestServer(t)
		mock.ResponseText = strings.Replace(colaResponse, `"healthRating":2`, `"healthRating":11`, 1)
		session := connectInMemory(t, ctx, srv)

		text, isErr := callTool(t, ctx, session, "analyze_label", map[string]any{
			"image_base64": base64.StdEncoding.EncodeToString(pngHeader),
		})
		if !isErr {
			t.Fatalf("expected contract error, got %s", text)
		}
		if !strings.Contains(text, "healthRating") {
			t.Errorf("error should name the field: %s", text)
		}
	})
}

func TestFindAlternatives(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, mock := newTestServer(t)
	mock.ResponseText = `{"alternatives":[
  {"name":"Baked Kale Chips","reason":"Crunchy with fiber.","imageSearchPrompt":"crispy baked kale chips"},
  {"name":"Roasted Chickpeas","reason":"Salty crunch with protein.","imageSearchPrompt":"spiced roasted chickpeas"},
  {"name":"Seaweed Snacks","reason":"Savory and low calorie.","imageSearchPrompt":"toasted seaweed sheets"}
]}`
	session := connectInMemory(t, ctx, srv)

	text, isErr := callTool(t, ctx, session, "find_alternatives", map[string]any{"query": " Doritos "})
	if isErr {
		t.Fatalf("find_alternatives returned error: %s", text)
	}
	var got struct {
		Query        string                            `json:"query"`
		Alternatives []nutrition.AlternativeSuggestion `json:"alternatives"`
	}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if got.Query != "Doritos" || len(got.Alternatives) != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !strings.Contains(got.Alternatives[0].ImageURL, "crispy%20baked%20kale%20chips") {
		t.Errorf("ImageURL = %s", got.Alternatives[0].ImageURL)
	}
	for i, alt := range got.Alternatives {
		if alt.Name == "" || alt.Reason == "" || alt.ImageSearchPrompt == "" || alt.ImageURL == "" {
			t.Errorf("alternative %d is incomplete: %+v", i, alt)
		}
	}

	t.Run("blank query", func(t *testing.T) {
		text, isErr := callTool(t, ctx, session, "find_alternatives", map[string]any{"query": "   "})
		if !isErr {
			t.Fatalf("expected error for blank query, got %s", text)
		}
	})
}

func TestGetContract(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv, _ := newTestServer(t)
	session := connectInMemory(t, ctx, srv)

	text, isErr := callTool(t, ctx, session, "get_contract", map[string]any{"name": "label_analysis"})
	if isErr {
		t.Fatalf("get_contract returned error: %s", text)
	}
	if !strings.Contains(text, "productIdentified") {
		t.Errorf("contract text missing fields: %s", text)
	}

	if _, isErr := callTool(t, ctx, session, "get_contract", map[string]any{"name": "nope"}); !isErr {
		t.Error("expected error for unknown contract")
	}
}
