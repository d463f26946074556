package infrastructure

import (
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"opsagent/internal/config"
	"opsagent/internal/domain/agent"
	"opsagent/internal/domain/tool"
	"opsagent/internal/infrastructure/crontab"
	"opsagent/internal/infrastructure/database"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/infrastructure/logger"
	"opsagent/internal/infrastructure/repository"
	"opsagent/internal/infrastructure/seed"
	"opsagent/internal/utils/crypto"
	"opsagent/internal/utils/httpclients"
	"opsagent/internal/utils/httpclients/chat"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Storage
	ProvideStore,
	ProvideDatabase,
	repository.RepositoryProvider,

	// Tool catalog
	ProvideToolRegistry,

	// Interpreter
	ProvideInterpreter,

	// Scheduled jobs
	crontab.NewCrontab,

	// Demo fixtures
	seed.NewSeeder,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the process logger from configuration.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideStore provides the JSON file store backing the file repositories.
func ProvideStore(cfg *config.Config) filestore.Store {
	return filestore.NewJSONStore(cfg.DataDir)
}

// ProvideDatabase opens the Postgres pool when DATABASE_URL is set. Without
// a DSN the repositories run on the JSON file store and the handle stays nil.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if !cfg.UsePostgres() {
		return nil, nil
	}

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Running database migrations...")
	if err := database.Migration(db); err != nil {
		log.Error().Err(err).Msg("Failed to run database migrations")
		return nil, err
	}
	log.Info().Msg("Database migrations completed successfully")

	return db, nil
}

// ProvideToolRegistry loads the tool catalog from the schema directory.
// Individual malformed descriptors are skipped; only an unreadable
// directory or a fully empty load is fatal at boot.
func ProvideToolRegistry(cfg *config.Config, log zerolog.Logger) (*tool.Registry, error) {
	registry := tool.NewRegistry()
	loaded, err := tool.LoadDir(cfg.ToolSchemaDir, registry, log)
	if loaded == 0 {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no tool descriptors in %s", cfg.ToolSchemaDir)
	}
	if err != nil {
		log.Warn().Err(err).Msg("some tool descriptors failed to load")
	}
	return registry, nil
}

// ProvideInterpreter selects the interpretation strategy from configuration.
// The strategies are mutually exclusive; AGENT_INTERPRETER decides at boot
// and nothing falls back between them at runtime.
func ProvideInterpreter(cfg *config.Config, registry *tool.Registry, log zerolog.Logger) (agent.Interpreter, error) {
	switch cfg.AgentInterpreter {
	case config.InterpreterPattern:
		return agent.NewPatternInterpreter(log), nil
	case config.InterpreterLLM:
		apiKey := cfg.OpenAIAPIKey
		if cfg.OpenAIKeyEncrypted {
			decrypted, err := crypto.DecryptString(cfg.AESKey, apiKey)
			if err != nil {
				return nil, fmt.Errorf("decrypt OPENAI_API_KEY: %w", err)
			}
			apiKey = decrypted
		}
		restyClient := httpclients.NewClient("openai")
		restyClient.SetTimeout(time.Duration(cfg.OpenAITimeoutSecond) * time.Second)
		chatClient := chat.NewChatCompletionClient(restyClient, "openai", cfg.OpenAIBaseURL)
		return agent.NewLLMInterpreter(chatClient, registry, apiKey, cfg.OpenAIModel, log), nil
	default:
		return nil, fmt.Errorf("unknown interpreter strategy %q", cfg.AgentInterpreter)
	}
}
