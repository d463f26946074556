package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Interpreter strategy names accepted by AGENT_INTERPRETER.
const (
	InterpreterPattern = "pattern"
	InterpreterLLM     = "llm"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// Config holds all runtime settings, populated from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	PprofPort   int    `env:"PPROF_PORT" envDefault:"6060"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// DataDir is the root of the JSON file store. DatabaseURL, when set,
	// switches persistence to Postgres instead.
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	DatabaseURL string `env:"DATABASE_URL"`

	ToolSchemaDir               string `env:"TOOL_SCHEMA_DIR" envDefault:"./configs/tools"`
	SchemaReloadEnabled         bool   `env:"SCHEMA_RELOAD_ENABLED" envDefault:"true"`
	SchemaReloadIntervalMinutes int    `env:"SCHEMA_RELOAD_INTERVAL_MINUTES" envDefault:"5"`

	AgentInterpreter  string `env:"AGENT_INTERPRETER" envDefault:"pattern"`
	AgentHistoryLimit int    `env:"AGENT_HISTORY_LIMIT" envDefault:"100"`

	OpenAIBaseURL       string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel         string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIKeyEncrypted  bool   `env:"OPENAI_API_KEY_ENCRYPTED" envDefault:"false"`
	OpenAITimeoutSecond int    `env:"OPENAI_TIMEOUT_SECONDS" envDefault:"30"`

	AESKey     string `env:"APP_AES_KEY"`
	HashSecret string `env:"APP_HASH_SECRET" envDefault:"opsagent-dev-secret"`

	AuthEnabled       bool   `env:"AUTH_ENABLED" envDefault:"false"`
	APIKeys           string `env:"API_KEYS"`
	APIKeyHourlyQuota int    `env:"API_KEY_HOURLY_QUOTA" envDefault:"1000"`

	SeedDemoData bool   `env:"SEED_DEMO_DATA" envDefault:"false"`
	SeedFile     string `env:"SEED_FILE" envDefault:"./configs/seed.yaml"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	OTELEnabled            bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTELExporterEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELServiceName        string `env:"OTEL_SERVICE_NAME" envDefault:"opsagent"`
	OTELInsecure           bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSampleRatio        float64
	OTELSampleRatioPercent int `env:"OTEL_SAMPLE_RATIO_PERCENT" envDefault:"100"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.OTELSampleRatio = float64(cfg.OTELSampleRatioPercent) / 100
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AgentInterpreter {
	case InterpreterPattern, InterpreterLLM:
	default:
		return fmt.Errorf("invalid AGENT_INTERPRETER %q (want %q or %q)",
			c.AgentInterpreter, InterpreterPattern, InterpreterLLM)
	}
	if c.AgentInterpreter == InterpreterLLM && c.OpenAIAPIKey == "" {
		return fmt.Errorf("AGENT_INTERPRETER=llm requires OPENAI_API_KEY")
	}
	if c.OpenAIKeyEncrypted && c.AESKey == "" {
		return fmt.Errorf("OPENAI_API_KEY_ENCRYPTED=true requires APP_AES_KEY")
	}
	if c.AuthEnabled && strings.TrimSpace(c.APIKeys) == "" {
		return fmt.Errorf("AUTH_ENABLED=true requires API_KEYS")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	if c.AgentHistoryLimit <= 0 {
		return fmt.Errorf("AGENT_HISTORY_LIMIT must be positive")
	}
	return nil
}

// Addr returns the listen address of the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the listen address of the Prometheus endpoint.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// IsDev reports whether the service runs in a development environment.
func (c *Config) IsDev() bool {
	env := strings.ToLower(c.Environment)
	return env == "development" || env == "dev" || env == "local"
}

// UsePostgres reports whether persistence is backed by Postgres rather than
// the JSON file store.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	return strings.Split(c.CORSAllowedOrigins, ",")
}
