package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsagent/internal/domain/order"
	"opsagent/internal/infrastructure/database/dbschema"
	"opsagent/internal/utils/platformerrors"
)

type OrderGormRepository struct {
	db *gorm.DB
}

var _ order.Repository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) order.Repository {
	return &OrderGormRepository{db: db}
}

// Create implements order.Repository.
func (repo *OrderGormRepository) Create(ctx context.Context, o *order.Order) error {
	row, err := dbschema.NewSchemaOrder(o)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to encode order items")
	}
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create order")
	}
	o.CreatedAt = row.CreatedAt
	o.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByID implements order.Repository.
func (repo *OrderGormRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var row dbschema.Order
	err := repo.db.WithContext(ctx).
		Where("UPPER(public_id) = UPPER(?)", id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find order by ID")
	}

	result, err := row.EtoD()
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode order items")
	}
	return result, nil
}

// Update implements order.Repository.
func (repo *OrderGormRepository) Update(ctx context.Context, o *order.Order) error {
	row, err := dbschema.NewSchemaOrder(o)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to encode order items")
	}
	row.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).Model(&dbschema.Order{}).
		Where("UPPER(public_id) = UPPER(?)", o.ID).
		Updates(map[string]interface{}{
			"client_id":  row.ClientID,
			"items":      row.Items,
			"total":      row.Total,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})

	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", o.ID))
	}

	o.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements order.Repository.
func (repo *OrderGormRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).
		Where("UPPER(public_id) = UPPER(?)", id).
		Delete(&dbschema.Order{})

	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", id))
	}
	return nil
}

// List implements order.Repository.
func (repo *OrderGormRepository) List(ctx context.Context) ([]*order.Order, error) {
	var rows []dbschema.Order
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list orders")
	}

	result := make([]*order.Order, len(rows))
	for i := range rows {
		o, err := rows[i].EtoD()
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode order items")
		}
		result[i] = o
	}
	return result, nil
}

// Count implements order.Repository.
func (repo *OrderGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&dbschema.Order{}).Count(&total).Error; err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count orders")
	}
	return total, nil
}

// NextSequence implements order.Repository. The sequence is derived from the
// IDs already stored for the day.
func (repo *OrderGormRepository) NextSequence(ctx context.Context, day time.Time) (int, error) {
	prefix := fmt.Sprintf("ORD-%s-", day.Format("20060102"))

	var ids []string
	err := repo.db.WithContext(ctx).Model(&dbschema.Order{}).
		Where("public_id LIKE ?", prefix+"%").
		Pluck("public_id", &ids).Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to read order sequence")
	}

	max := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}
