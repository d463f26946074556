package repository

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"opsagent/internal/config"
	"opsagent/internal/domain/client"
	"opsagent/internal/domain/employee"
	"opsagent/internal/domain/order"
	"opsagent/internal/infrastructure/database/repository/clientrepo"
	"opsagent/internal/infrastructure/database/repository/employeerepo"
	"opsagent/internal/infrastructure/database/repository/orderrepo"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/infrastructure/repository/clientfilerepo"
	"opsagent/internal/infrastructure/repository/employeefilerepo"
	"opsagent/internal/infrastructure/repository/orderfilerepo"
)

var RepositoryProvider = wire.NewSet(
	NewClientRepository,
	NewOrderRepository,
	NewEmployeeRepository,
)

// NewClientRepository selects the storage backend from configuration. The
// db handle is nil unless DATABASE_URL is set.
func NewClientRepository(cfg *config.Config, store filestore.Store, db *gorm.DB) client.Repository {
	if cfg.UsePostgres() {
		return clientrepo.NewClientGormRepository(db)
	}
	return clientfilerepo.NewClientFileRepository(store)
}

// NewOrderRepository selects the storage backend from configuration.
func NewOrderRepository(cfg *config.Config, store filestore.Store, db *gorm.DB) order.Repository {
	if cfg.UsePostgres() {
		return orderrepo.NewOrderGormRepository(db)
	}
	return orderfilerepo.NewOrderFileRepository(store)
}

// NewEmployeeRepository selects the storage backend from configuration.
func NewEmployeeRepository(cfg *config.Config, store filestore.Store, db *gorm.DB) employee.Repository {
	if cfg.UsePostgres() {
		return employeerepo.NewEmployeeGormRepository(db)
	}
	return employeefilerepo.NewEmployeeFileRepository(store)
}
