// ABOUTME: Exa web-search adapter speaking MCP over streamable HTTP
// ABOUTME: Session lifecycle is owned per adapter instance and re-acquired on failure
package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"redpen/internal/models"
)

const (
	exaToolName   = "web_search_exa"
	exaMaxResults = 3
)

// ExaClient calls a remote Exa MCP server's web-search tool. The MCP
// session belongs to this instance; a failed call drops the session and
// one fresh session is acquired for a single retry.
type ExaClient struct {
	url string

	mu     sync.Mutex
	client *mcpclient.Client
}

// NewExaClient creates an Exa MCP search client. url is overridable for
// tests; empty selects the public endpoint.
func NewExaClient(url string) *ExaClient {
	if url == "" {
		url = "https://mcp.exa.ai/mcp"
	}
	return &ExaClient{url: url}
}

// Search runs one query through the MCP tool call.
func (c *ExaClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	results, err := c.callTool(ctx, query)
	if err == nil {
		return results, nil
	}

	// Expired or broken session: drop it and retry once on a fresh one.
	log.Printf("[exa] tool call failed, re-acquiring session: %v", err)
	c.dropSession()
	return c.callTool(ctx, query)
}

func (c *ExaClient) callTool(ctx context.Context, query string) ([]models.SearchResult, error) {
	client, err := c.session(ctx)
	if err != nil {
		return nil, err
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = exaToolName
	req.Params.Arguments = map[string]any{
		"query":      query,
		"numResults": exaMaxResults,
	}

	result, err := client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("exa: tool call: %w", err)
	}
	if result.IsError {
		return nil, fmt.Errorf("exa: tool returned an error")
	}

	var text string
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			text = tc.Text
			break
		}
	}
	if text == "" {
		return nil, nil
	}
	return parseExaText(text), nil
}

// session returns the live MCP client, establishing one if needed.
func (c *ExaClient) session(ctx context.Context) (*mcpclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := mcpclient.NewStreamableHttpClient(c.url)
	if err != nil {
		return nil, fmt.Errorf("exa: create client: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("exa: start transport: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "redpen", Version: "1.0.0"}
	if _, err := client.Initialize(ctx, initReq); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("exa: initialize session: %w", err)
	}

	c.client = client
	return client, nil
}

func (c *ExaClient) dropSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		_ = c.client.Close()
		c.client = nil
	}
}

// Close releases the MCP session, if any.
func (c *ExaClient) Close() error {
	c.dropSession()
	return nil
}

// parseExaText extracts results from Exa's plain-text tool output, which
// lists "Title: ... / URL: ... / Text: ..." blocks separated by blank lines.
func parseExaText(text string) []models.SearchResult {
	var results []models.SearchResult

	blocks := strings.Split(text, "\n\nTitle:")
	for i, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if i > 0 || !strings.HasPrefix(block, "Title:") {
			block = "Title:" + block
		}

		title := matchLine(block, "Title:")
		url := matchLine(block, "URL:")
		if title == "" || url == "" {
			continue
		}

		snippet := ""
		if idx := strings.Index(block, "Text:"); idx != -1 {
			snippet = truncateRunes(strings.TrimSpace(block[idx+len("Text:"):]), maxSnippetRunes)
		}

		results = append(results, models.SearchResult{Title: title, URL: url, Snippet: snippet})
		if len(results) == exaMaxResults {
			break
		}
	}
	return results
}

// matchLine returns the rest of the first line starting with prefix.
func matchLine(block, prefix string) string {
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
