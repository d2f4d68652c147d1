// Package server wires the HTTP surface: the chat endpoint with its
// SSE stream, tool discovery, health and metrics.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamedsh/agentchat/cache"
	"github.com/hamedsh/agentchat/config"
	"github.com/hamedsh/agentchat/fetch"
	"github.com/hamedsh/agentchat/internal/agent"
	"github.com/hamedsh/agentchat/provider"
	"github.com/hamedsh/agentchat/search"
	"github.com/hamedsh/agentchat/tools"
)

const version = "4.0.0"

// Run builds the tool catalog and the agent loop from cfg and serves
// until the listener fails.
func Run(cfg *config.Config) error {
	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	registry, err := BuildRegistry(cfg)
	if err != nil {
		return err
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	loop := agent.NewLoop(llm, registry)

	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)
	logger.Printf("starting backend with %d tools", len(registry.Names()))
	logger.Printf("available tools: %v", registry.Names())

	e := newEcho(cfg, registry)
	ch := &ChatHandler{Loop: loop, Registry: registry, Config: cfg}
	ch.Register(e.Group("/api"))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message":  "Assistant UI Backend",
			"version":  version,
			"tools":    registry.Names(),
			"features": []string{"Agent Mode", "Tool Toggles", "Dynamic Prompts", "File System"},
		})
	})

	return e.Start(cfg.Server.Address)
}

// BuildRegistry assembles the tool catalog from the configured
// capabilities. Search and fetch tools require a search credential;
// the file-system tool always registers.
func BuildRegistry(cfg *config.Config) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	if cfg.Search.APIKey() != "" {
		fetcher, err := fetch.NewFetcher(fetch.Backend(cfg.Fetch.Backend), cfg.Fetch.ScraperAPIKey, cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
		if err != nil {
			return nil, err
		}
		searcher, err := search.NewWebSearcher(search.Provider(cfg.Search.Provider), cfg.Search.APIKey())
		if err != nil {
			return nil, err
		}
		store, err := cache.New(cfg.Cache)
		if err != nil {
			return nil, err
		}
		webSearch := tools.NewWebSearchTool(searcher, fetcher, store, cfg.Cache.TTL)
		registry.Register(webSearch)
		registry.Register(tools.NewCaseStudiesTool(webSearch))
		registry.Register(tools.NewFetchURLTool(fetcher))
	}

	fsTool, err := tools.NewFileSystemTool(cfg.FileSystem.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file system tool: %w", err)
	}
	registry.Register(fsTool)

	return registry, nil
}

func newEcho(cfg *config.Config, registry *tools.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		names := registry.Names()
		return c.JSON(http.StatusOK, map[string]any{
			"status":     "healthy",
			"tool_count": len(names),
			"tools":      names,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}
