// Package config provides configuration loading for the analyze CLI.
//
// The package supports configuration via environment variables and
// command-line flags, with environment variables used as defaults and
// flags taking precedence if provided.
//
// Configuration is parsed using github.com/caarlos0/env for environment
// variables and the standard flag package for CLI arguments.
//
// Custom parsers are defined for types such as time.Duration to allow
// concise numeric configuration (values are interpreted as seconds).
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/gabkaclassic/repomaintindex/pkg/logger"
)

const (
	defaultForgeBaseURL = "https://api.github.com"
	defaultLLMBaseURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel     = "openai/gpt-4o-mini"
)

// Config is the fully-resolved configuration the core analysis engine
// is built from. It is never read from the environment directly by the
// core; the analyze command resolves one of these and passes it in.
type Config struct {
	Token          string        `env:"GITHUB_TOKEN"`
	LLMKey         string        `env:"OPENROUTER_API_KEY"`
	BaseURL        string        `env:"FORGE_BASE_URL" envDefault:"https://api.github.com"`
	LLMBaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1/chat/completions"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"openai/gpt-4o-mini"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"10"`
	HTTPRetries    int           `env:"HTTP_RETRIES" envDefault:"3"`
	CacheCapacity  int           `env:"CACHE_CAPACITY" envDefault:"256"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"3600"`
	WorkerPoolSize int           `env:"WORKER_POOL_SIZE" envDefault:"3"`
	LLMDeadline    time.Duration `env:"LLM_DEADLINE" envDefault:"30"`
	Log            logger.LogConfig
}

// fileConfig represents optional JSON-based configuration overrides.
//
// All fields are optional and map 1:1 to existing environment variables
// (token also has a command-line flag). Missing or zero-value fields
// must NOT override values provided by environment variables or flags.
type fileConfig struct {
	Token      string `json:"token"`
	LLMKey     string `json:"llm_key"`
	BaseURL    string `json:"base_url"`
	LLMBaseURL string `json:"llm_base_url"`
	LLMModel   string `json:"llm_model"`
}

func defineEnvParsers() map[reflect.Type]env.ParserFunc {
	return map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
			secs, err := strconv.Atoi(v)
			if err != nil {
				return nil, err
			}
			return time.Duration(secs) * time.Second, nil
		},
	}
}

// getConfigPath resolves configuration file path from supported sources.
//
// Resolution order:
//  1. CONFIG environment variable
//  2. Command-line flags: -c, -config, -c=..., -config=...
//
// The function does not validate file existence.
// Empty string means configuration file was not specified.
func getConfigPath() string {
	if v := os.Getenv("CONFIG"); v != "" {
		return v
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "-c" || a == "-config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}

		if strings.HasPrefix(a, "-c=") {
			return strings.TrimPrefix(a, "-c=")
		}

		if strings.HasPrefix(a, "-config=") {
			return strings.TrimPrefix(a, "-config=")
		}
	}

	return ""
}

// loadFileConfig loads and parses the optional JSON configuration file.
//
// If the file does not exist, os.ErrNotExist is returned.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyFileConfig applies JSON configuration values to cfg. Only
// non-zero fields from fc are applied; existing values are never
// overwritten by zero-values from JSON.
func applyFileConfig(cfg *Config, fc *fileConfig) {
	if fc == nil {
		return
	}

	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.LLMKey != "" {
		cfg.LLMKey = fc.LLMKey
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.LLMBaseURL != "" {
		cfg.LLMBaseURL = fc.LLMBaseURL
	}
	if fc.LLMModel != "" {
		cfg.LLMModel = fc.LLMModel
	}
}

// Parse parses and returns the analyze command's configuration.
//
// Configuration values are loaded from environment variables first,
// then overridden by an optional JSON file, then overridden by
// command-line flags if provided. Parse defines the -token, -log-*,
// -c and -config flags itself and makes the process's single
// flag.Parse call, so any other flags (such as the analyze command's
// --format and --llm) must be registered before Parse is called. The
// OWNER/REPO argument is left in flag.Args for the caller.
func Parse() (*Config, error) {
	var cfg Config

	parsers := defineEnvParsers()
	if err := env.ParseWithOptions(&cfg, env.Options{FuncMap: parsers}); err != nil {
		return nil, err
	}

	configPath := getConfigPath()
	if configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			applyFileConfig(&cfg, fc)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultForgeBaseURL
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = defaultLLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultLLMModel
	}

	logLevel := flag.String("log-level", cfg.Log.Level, "Logging level")
	logFile := flag.String("log-file", cfg.Log.File, "Log file path")
	logConsole := flag.Bool("log-console", cfg.Log.Console, "Enable console logging")
	logJSON := flag.Bool("log-json", cfg.Log.JSON, "Enable JSON output for logs")
	token := flag.String("token", cfg.Token, "Forge API token")
	flag.String("c", configPath, "Path to JSON configuration file")
	flag.String("config", configPath, "Path to JSON configuration file")

	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-file":
			cfg.Log.File = *logFile
		case "log-console":
			cfg.Log.Console = *logConsole
		case "log-json":
			cfg.Log.JSON = *logJSON
		case "token":
			cfg.Token = *token
		}
	})

	return &cfg, nil
}
