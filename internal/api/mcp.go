package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/korjavin/fitnourish/internal/nutrition"
	"github.com/korjavin/fitnourish/internal/present"
)

// MCP tool names served on POST /mcp.
const (
	ToolListFoods     = "list_foods"
	ToolSearchFoods   = "search_foods"
	ToolShowNutrition = "show_nutrition"
)

type searchParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type showParams struct {
	Food string `json:"food"`
	Goal string `json:"goal,omitempty"`
}

type errBadArguments struct{ err error }

func (e errBadArguments) Error() string { return e.err.Error() }

// MCP answers a single tools/call request.
func (h *Handler) MCP(w http.ResponseWriter, r *http.Request) {
	var req protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	var (
		result *protocol.CallToolResult
		err    error
	)
	switch req.Name {
	case ToolListFoods:
		result, err = textResult(map[string]any{"names": h.Data.Names()})
	case ToolSearchFoods:
		result, err = h.mcpSearch(&req)
	case ToolShowNutrition:
		result, err = h.mcpShow(&req)
	default:
		http.Error(w, fmt.Sprintf("unknown tool: %s", req.Name), http.StatusNotFound)
		return
	}
	if err != nil {
		var bad errBadArguments
		if errors.As(err, &bad) {
			http.Error(w, bad.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("mcp tool failed", "tool", req.Name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) mcpSearch(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var p searchParams
	if err := extractParams(req, &p); err != nil {
		return nil, errBadArguments{err}
	}
	if p.Query == "" {
		return nil, errBadArguments{errors.New("missing argument 'query'")}
	}
	if p.Limit <= 0 {
		p.Limit = h.SearchLimit
	}
	names, err := h.Search.Search(p.Query, p.Limit)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return textResult(map[string]any{"results": names})
}

// mcpShow returns the summary text followed by the chart bars, so a model
// can quote the verdict and reason about the numbers.
func (h *Handler) mcpShow(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var p showParams
	if err := extractParams(req, &p); err != nil {
		return nil, errBadArguments{err}
	}
	goal, err := nutrition.ParseGoal(p.Goal)
	if err != nil {
		return nil, errBadArguments{err}
	}

	res := h.Presenter.Present(p.Food, goal)
	content := []protocol.Content{
		protocol.TextContent{Type: "text", Text: res.Text},
	}
	if res.Kind == present.KindOK && res.Chart != nil {
		bars, err := json.Marshal(res.Chart)
		if err != nil {
			return nil, fmt.Errorf("marshal chart: %w", err)
		}
		content = append(content, protocol.TextContent{Type: "text", Text: string(bars)})
	}
	return &protocol.CallToolResult{Content: content}, nil
}

// extractParams round-trips the request arguments through JSON into target.
func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(v any) (*protocol.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{Type: "text", Text: string(data)},
		},
	}, nil
}
