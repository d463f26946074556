package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsagent/internal/config"
	"opsagent/internal/infrastructure/metrics"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/idgen"
	"opsagent/internal/utils/platformerrors"
)

const (
	apiKeyHeader        = "X-API-Key"
	principalContextKey = "principal"
)

// APIKeyAuth validates requests against the static key allowlist. Configured
// keys are stored as salted SHA-256 digests at construction, so request
// handling never touches plaintext.
type APIKeyAuth struct {
	enabled bool
	secret  []byte
	keys    map[string]string // digest -> key name
	logger  zerolog.Logger
}

// NewAPIKeyAuth parses the name:key pairs from config into the digest
// allowlist. Malformed entries are skipped, not fatal.
func NewAPIKeyAuth(cfg *config.Config, logger zerolog.Logger) *APIKeyAuth {
	secret := []byte(cfg.HashSecret)
	keys := make(map[string]string)
	for _, pair := range strings.Split(cfg.APIKeys, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, key, ok := strings.Cut(pair, ":")
		if !ok || name == "" || key == "" {
			logger.Warn().Msg("skipping malformed API key entry")
			continue
		}
		keys[idgen.HashKey256(key, secret)] = name
	}

	if cfg.AuthEnabled && len(keys) == 0 {
		logger.Warn().Msg("auth enabled but no API keys configured, all requests will be rejected")
	}

	return &APIKeyAuth{
		enabled: cfg.AuthEnabled,
		secret:  secret,
		keys:    keys,
		logger:  logger,
	}
}

// Middleware enforces the allowlist. When auth is disabled every request
// passes through untouched.
func (a *APIKeyAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled {
			c.Next()
			return
		}

		key := extractAPIKey(c)
		if key == "" {
			metrics.RecordAuthRequest("denied")
			a.logger.Warn().
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required")
			return
		}

		name, ok := a.keys[idgen.HashKey256(key, a.secret)]
		if !ok {
			metrics.RecordAuthRequest("denied")
			a.logger.Warn().Str("path", c.Request.URL.Path).Msg("unknown API key")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "invalid API key")
			return
		}

		metrics.RecordAuthRequest("allowed")
		c.Set(principalContextKey, name)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated API key name, if any.
func PrincipalFromContext(c *gin.Context) (string, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return "", false
	}
	name, ok := val.(string)
	return name, ok && name != ""
}

func extractAPIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(apiKeyHeader)); key != "" {
		return key
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
