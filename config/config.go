package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the chat backend.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Search     SearchConfig     `mapstructure:"search"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Cache      CacheConfig      `mapstructure:"cache"`
	FileSystem FileSystemConfig `mapstructure:"file_system"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LLMConfig contains the completion provider settings.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required (AGENTCHAT_LLM_API_KEY)")
	}
	return nil
}

// SearchConfig contains web search provider settings. Search tools are
// registered only when the selected provider has a key configured.
type SearchConfig struct {
	Provider     string        `mapstructure:"provider"` // brave or serper
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// APIKey returns the key for the selected provider, empty when unset.
func (s SearchConfig) APIKey() string {
	switch s.Provider {
	case "serper":
		return s.SerperAPIKey
	default:
		return s.BraveAPIKey
	}
}

// FetchConfig contains URL fetching settings.
type FetchConfig struct {
	Backend       string        `mapstructure:"backend"` // scraperapi or chromedp
	ScraperAPIKey string        `mapstructure:"scraperapi_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxChars      int           `mapstructure:"max_chars"`
}

func (f FetchConfig) Validate() error {
	switch f.Backend {
	case "", "scraperapi", "chromedp":
		return nil
	}
	return fmt.Errorf("fetch.backend must be scraperapi or chromedp, got %q", f.Backend)
}

// CacheConfig controls the search/fetch result cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // memory or redis
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

func (c CacheConfig) Validate() error {
	switch c.Backend {
	case "", "memory":
		return nil
	case "redis":
		if strings.TrimSpace(c.Redis.Host) == "" {
			return fmt.Errorf("cache.redis.host required when cache.backend is redis")
		}
		return nil
	}
	return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Backend)
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// FileSystemConfig contains the sandbox root for the file_system tool.
type FileSystemConfig struct {
	ProjectRoot string `mapstructure:"project_root"`
}

// LoadConfig loads config from file and AGENTCHAT_* environment
// variables. A missing config file is not fatal; the binary can run
// from env vars and defaults alone.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("server.allow_origins", []string{"http://localhost:3000", "http://localhost:3001"})
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 16000)
	viper.SetDefault("llm.timeout", 120*time.Second)
	viper.SetDefault("search.provider", "brave")
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.timeout", 10*time.Second)
	viper.SetDefault("fetch.backend", "scraperapi")
	viper.SetDefault("fetch.timeout", 30*time.Second)
	viper.SetDefault("fetch.max_chars", 50000)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("file_system.project_root", "")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("AGENTCHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.FileSystem.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve project root: %w", err)
		}
		cfg.FileSystem.ProjectRoot = wd
	}

	if err := cfg.Fetch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
