package clientrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"opsagent/internal/domain/client"
	"opsagent/internal/infrastructure/database/dbschema"
	"opsagent/internal/utils/platformerrors"
)

type ClientGormRepository struct {
	db *gorm.DB
}

var _ client.Repository = (*ClientGormRepository)(nil)

func NewClientGormRepository(db *gorm.DB) client.Repository {
	return &ClientGormRepository{db: db}
}

// Create implements client.Repository.
func (repo *ClientGormRepository) Create(ctx context.Context, c *client.Client) error {
	row := dbschema.ClientDtoE(c)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create client")
	}
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByID implements client.Repository.
func (repo *ClientGormRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	var row dbschema.Client
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", id))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find client by ID")
	}
	return row.EtoD(), nil
}

// GetByEmail implements client.Repository.
func (repo *ClientGormRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	var row dbschema.Client
	err := repo.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client with email %s not found", email))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find client by email")
	}
	return row.EtoD(), nil
}

// Update implements client.Repository.
func (repo *ClientGormRepository) Update(ctx context.Context, c *client.Client) error {
	row := dbschema.ClientDtoE(c)
	row.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).Model(&dbschema.Client{}).
		Where("public_id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":       row.Name,
			"email":      row.Email,
			"phone":      row.Phone,
			"company":    row.Company,
			"balance":    row.Balance,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})

	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to update client")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", c.ID))
	}

	c.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements client.Repository.
func (repo *ClientGormRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", id).
		Delete(&dbschema.Client{})

	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete client")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", id))
	}
	return nil
}

// List implements client.Repository.
func (repo *ClientGormRepository) List(ctx context.Context) ([]*client.Client, error) {
	var rows []dbschema.Client
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list clients")
	}

	result := make([]*client.Client, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// Count implements client.Repository.
func (repo *ClientGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&dbschema.Client{}).Count(&total).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count clients")
	}
	return total, nil
}
