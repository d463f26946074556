package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"opsagent/internal/config"
	"opsagent/internal/domain/client"
	"opsagent/internal/domain/employee"
	"opsagent/internal/domain/order"
	"opsagent/internal/domain/tool"
	"opsagent/internal/infrastructure/logger"
	"opsagent/internal/infrastructure/metrics"
	"opsagent/internal/utils/platformerrors"
)

const (
	DefaultSchemaReloadInterval = 5               // in minutes
	CronJobTimeout              = 1 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab      *crontab.Crontab
	cfg       *config.Config
	registry  *tool.Registry
	clients   *client.Service
	orders    *order.Service
	employees *employee.Service
}

func NewCrontab(
	cfg *config.Config,
	registry *tool.Registry,
	clients *client.Service,
	orders *order.Service,
	employees *employee.Service,
) *Crontab {
	return &Crontab{
		ctab:      crontab.New(),
		cfg:       cfg,
		registry:  registry,
		clients:   clients,
		orders:    orders,
		employees: employees,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// execute once on server start
	c.refreshEntityGauges(ctx)
	metrics.SetToolsRegistered(c.registry.Len())

	// Schedule schema reload job if enabled
	if c.cfg.SchemaReloadEnabled {
		interval := c.cfg.SchemaReloadIntervalMinutes
		if interval <= 0 {
			interval = DefaultSchemaReloadInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.reloadSchemas(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add schema reload job")
		}
		log.Info().Msgf("Schema reload scheduled: every %d minute(s)", interval)
	}

	// Schedule entity gauge refresh job
	if err := c.ctab.AddJob("* * * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.refreshEntityGauges(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add gauge refresh job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) reloadSchemas(ctx context.Context) {
	log := logger.GetLogger()

	loaded, err := tool.LoadDir(c.cfg.ToolSchemaDir, c.registry, log)
	if err != nil {
		metrics.RecordSchemaReload(false)
		log.Error().Err(err).Msg("Failed to reload tool schemas")
		return
	}

	metrics.RecordSchemaReload(true)
	metrics.SetToolsRegistered(c.registry.Len())
	log.Info().Msgf("Reloaded %d tool descriptors", loaded)
}

func (c *Crontab) refreshEntityGauges(ctx context.Context) {
	log := logger.GetLogger()

	if n, err := c.clients.CountClients(ctx); err == nil {
		metrics.SetEntityCount("clients", n)
	} else {
		log.Warn().Err(err).Msg("Failed to count clients")
	}
	if n, err := c.orders.CountOrders(ctx); err == nil {
		metrics.SetEntityCount("orders", n)
	} else {
		log.Warn().Err(err).Msg("Failed to count orders")
	}
	if n, err := c.employees.CountEmployees(ctx); err == nil {
		metrics.SetEntityCount("employees", n)
	} else {
		log.Warn().Err(err).Msg("Failed to count employees")
	}
	if departments, err := c.employees.ListDepartments(ctx); err == nil {
		metrics.SetEntityCount("departments", int64(len(departments)))
	} else {
		log.Warn().Err(err).Msg("Failed to count departments")
	}
}
