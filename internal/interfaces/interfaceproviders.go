package interfaces

import (
	"github.com/google/wire"

	"opsagent/internal/config"
	"opsagent/internal/interfaces/httpserver"
	middleware "opsagent/internal/interfaces/httpserver/middlewares"
)

var InterfacesProvider = wire.NewSet(
	middleware.NewAPIKeyAuth,
	ProvideQuotaLimiter,
	httpserver.NewHTTPServer,
)

// ProvideQuotaLimiter sizes the per-key hourly quota from configuration.
func ProvideQuotaLimiter(cfg *config.Config) *middleware.QuotaLimiter {
	return middleware.NewQuotaLimiter(cfg.APIKeyHourlyQuota)
}
