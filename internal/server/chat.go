package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hamedsh/agentchat/config"
	"github.com/hamedsh/agentchat/internal/agent"
	"github.com/hamedsh/agentchat/provider"
	"github.com/hamedsh/agentchat/tools"
)

var chatTracer = otel.Tracer("agentchat/internal/server/chat")

// ChatHandler serves the chat endpoint and tool discovery.
type ChatHandler struct {
	Loop     *agent.Loop
	Registry *tools.Registry
	Config   *config.Config
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound chat payload. Stream defaults to true.
type ChatRequest struct {
	Messages     []chatMessage `json:"messages"`
	Model        string        `json:"model,omitempty"`
	Temperature  *float64      `json:"temperature,omitempty"`
	MaxTokens    *int          `json:"max_tokens,omitempty"`
	Stream       *bool         `json:"stream,omitempty"`
	EnabledTools []string      `json:"enabled_tools,omitempty"`
}

// ChatResponse is the non-streaming reply body.
type ChatResponse struct {
	Text string `json:"text"`
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
	g.GET("/tools", h.listTools)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages required")
	}

	stream := true
	if req.Stream != nil {
		stream = *req.Stream
	}
	mode := "normal"
	if len(req.EnabledTools) > 0 {
		mode = "agent"
	}
	chatRequestsTotal.WithLabelValues(mode, strconv.FormatBool(stream)).Inc()

	httpReq := c.Request()
	ctx, span := chatTracer.Start(httpReq.Context(), "ChatHandler.chat")
	defer span.End()
	span.SetAttributes(
		attribute.String("mode", mode),
		attribute.Bool("stream", stream),
		attribute.Int("messages", len(req.Messages)),
		attribute.StringSlice("enabled_tools", req.EnabledTools),
	)
	c.SetRequest(httpReq.WithContext(ctx))

	loopReq := h.buildLoopRequest(req)

	if !stream {
		text := ""
		for ev := range h.Loop.Stream(ctx, loopReq) {
			recordEvent(ev)
			if ev.Type == agent.EventContent && ev.Text != "" {
				text = ev.Text
			}
		}
		if text == "" {
			text = agent.NoResponseText
		}
		return c.JSON(http.StatusOK, ChatResponse{Text: text})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		span.SetStatus(codes.Error, "streaming unsupported")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "streaming unsupported")
	}

	activeStreams.Inc()
	defer activeStreams.Dec()

	for ev := range h.Loop.Stream(ctx, loopReq) {
		recordEvent(ev)
		data, err := json.Marshal(ev)
		if err != nil {
			span.RecordError(err)
			continue
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
			span.RecordError(err)
			return nil
		}
		flusher.Flush()
	}
	return nil
}

func (h *ChatHandler) buildLoopRequest(req ChatRequest) agent.Request {
	messages := make([]provider.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, provider.Message{Role: m.Role, Content: m.Content})
	}

	model := req.Model
	if model == "" {
		model = h.Config.LLM.Model
	}
	temperature := h.Config.LLM.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := h.Config.LLM.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	return agent.Request{
		Messages:     messages,
		Model:        model,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		EnabledTools: req.EnabledTools,
	}
}

type toolInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []tools.Parameter `json:"parameters"`
}

// listTools exposes the catalog read-only for discovery.
func (h *ChatHandler) listTools(c echo.Context) error {
	out := make([]toolInfo, 0)
	for _, t := range h.Registry.List() {
		out = append(out, toolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"tools": out})
}
