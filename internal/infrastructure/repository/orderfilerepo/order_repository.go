package orderfilerepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"opsagent/internal/domain/order"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/utils/platformerrors"
)

const collection = "orders"

// OrderFileRepository keeps the order collection in a single JSON file.
type OrderFileRepository struct {
	mu    sync.RWMutex
	store filestore.Store
}

var _ order.Repository = (*OrderFileRepository)(nil)

func NewOrderFileRepository(store filestore.Store) order.Repository {
	return &OrderFileRepository{store: store}
}

// Create implements order.Repository.
func (repo *OrderFileRepository) Create(ctx context.Context, o *order.Order) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	items = append(items, *o)
	return repo.save(ctx, items)
}

// GetByID implements order.Repository.
func (repo *OrderFileRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(items[i].ID, id) {
			o := items[i]
			return &o, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", id))
}

// Update implements order.Repository.
func (repo *OrderFileRepository) Update(ctx context.Context, o *order.Order) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if strings.EqualFold(items[i].ID, o.ID) {
			items[i] = *o
			return repo.save(ctx, items)
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", o.ID))
}

// Delete implements order.Repository.
func (repo *OrderFileRepository) Delete(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]order.Order, 0, len(items))
	for i := range items {
		if !strings.EqualFold(items[i].ID, id) {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("order %s not found", id))
	}
	return repo.save(ctx, kept)
}

// List implements order.Repository.
func (repo *OrderFileRepository) List(ctx context.Context) ([]*order.Order, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*order.Order, len(items))
	for i := range items {
		o := items[i]
		result[i] = &o
	}
	return result, nil
}

// Count implements order.Repository.
func (repo *OrderFileRepository) Count(ctx context.Context) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// NextSequence implements order.Repository. The sequence is derived from the
// IDs already on disk, so it survives restarts without a separate counter.
func (repo *OrderFileRepository) NextSequence(ctx context.Context, day time.Time) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return 0, err
	}
	prefix := fmt.Sprintf("ORD-%s-", day.Format("20060102"))
	max := 0
	for i := range items {
		rest, ok := strings.CutPrefix(items[i].ID, prefix)
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

func (repo *OrderFileRepository) load(ctx context.Context) ([]order.Order, error) {
	var items []order.Order
	if err := repo.store.Read(ctx, collection, &items); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load orders")
	}
	return items, nil
}

func (repo *OrderFileRepository) save(ctx context.Context, items []order.Order) error {
	if err := repo.store.Write(ctx, collection, items); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save orders")
	}
	return nil
}
