package clientfilerepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"opsagent/internal/domain/client"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/utils/platformerrors"
)

const collection = "clients"

// ClientFileRepository keeps the client collection in a single JSON file.
// Every mutation rewrites the file through the store.
type ClientFileRepository struct {
	mu    sync.RWMutex
	store filestore.Store
}

var _ client.Repository = (*ClientFileRepository)(nil)

func NewClientFileRepository(store filestore.Store) client.Repository {
	return &ClientFileRepository{store: store}
}

// Create implements client.Repository.
func (repo *ClientFileRepository) Create(ctx context.Context, c *client.Client) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	items = append(items, *c)
	return repo.save(ctx, items)
}

// GetByID implements client.Repository.
func (repo *ClientFileRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			c := items[i]
			return &c, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", id))
}

// GetByEmail implements client.Repository.
func (repo *ClientFileRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(items[i].Email, email) {
			c := items[i]
			return &c, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client with email %s not found", email))
}

// Update implements client.Repository.
func (repo *ClientFileRepository) Update(ctx context.Context, c *client.Client) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == c.ID {
			items[i] = *c
			return repo.save(ctx, items)
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", c.ID))
}

// Delete implements client.Repository.
func (repo *ClientFileRepository) Delete(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]client.Client, 0, len(items))
	for i := range items {
		if items[i].ID != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, fmt.Sprintf("client %s not found", id))
	}
	return repo.save(ctx, kept)
}

// List implements client.Repository.
func (repo *ClientFileRepository) List(ctx context.Context) ([]*client.Client, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*client.Client, len(items))
	for i := range items {
		c := items[i]
		result[i] = &c
	}
	return result, nil
}

// Count implements client.Repository.
func (repo *ClientFileRepository) Count(ctx context.Context) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (repo *ClientFileRepository) load(ctx context.Context) ([]client.Client, error) {
	var items []client.Client
	if err := repo.store.Read(ctx, collection, &items); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load clients")
	}
	return items, nil
}

func (repo *ClientFileRepository) save(ctx context.Context, items []client.Client) error {
	if err := repo.store.Write(ctx, collection, items); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save clients")
	}
	return nil
}
