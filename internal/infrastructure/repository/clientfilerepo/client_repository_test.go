package clientfilerepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"opsagent/internal/domain/client"
	"opsagent/internal/infrastructure/filestore"
	"opsagent/internal/infrastructure/repository/clientfilerepo"
	"opsagent/internal/utils/platformerrors"
)

func newRepo(t *testing.T) (client.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	return clientfilerepo.NewClientFileRepository(filestore.NewJSONStore(dir)), dir
}

func sampleClient(id, email string) *client.Client {
	now := time.Now().UTC()
	return &client.Client{
		ID:        id,
		Name:      "Acme Corp",
		Email:     email,
		Status:    client.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestClientFileRepositoryCreateAndGet(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleClient("cli_1", "a@acme.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "cli_1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "a@acme.test" || got.Status != client.StatusActive {
		t.Errorf("GetByID returned %+v, want the created client", got)
	}
}

func TestClientFileRepositoryPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := clientfilerepo.NewClientFileRepository(filestore.NewJSONStore(dir))
	if err := first.Create(ctx, sampleClient("cli_1", "a@acme.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := clientfilerepo.NewClientFileRepository(filestore.NewJSONStore(dir))
	got, err := second.GetByID(ctx, "cli_1")
	if err != nil {
		t.Fatalf("GetByID on fresh instance: %v", err)
	}
	if got.Email != "a@acme.test" {
		t.Errorf("fresh instance loaded %+v, want the persisted client", got)
	}
}

func TestClientFileRepositoryGetByEmailCaseInsensitive(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleClient("cli_1", "billing@acme.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "Billing@ACME.test")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "cli_1" {
		t.Errorf("GetByEmail returned %s, want cli_1", got.ID)
	}
}

func TestClientFileRepositoryUpdate(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	c := sampleClient("cli_1", "a@acme.test")
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c.Balance = 250.75
	c.Status = client.StatusInactive
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, "cli_1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Balance != 250.75 || got.Status != client.StatusInactive {
		t.Errorf("after update got %+v", got)
	}

	missing := sampleClient("cli_missing", "b@acme.test")
	if err := repo.Update(ctx, missing); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("Update of missing client: %v, want not_found", err)
	}
}

func TestClientFileRepositoryDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleClient("cli_1", "a@acme.test")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "cli_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "cli_1"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetByID after delete: %v, want not_found", err)
	}
	if err := repo.Delete(ctx, "cli_1"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("second Delete: %v, want not_found", err)
	}
}

func TestClientFileRepositoryListAndCount(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	for _, id := range []string{"cli_1", "cli_2", "cli_3"} {
		if err := repo.Create(ctx, sampleClient(id, id+"@acme.test")); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].ID != "cli_1" || list[2].ID != "cli_3" {
		t.Errorf("List returned %d entries in unexpected order", len(list))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}

func TestClientFileRepositoryCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clients.json"), []byte("not json"), 0644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	repo := clientfilerepo.NewClientFileRepository(filestore.NewJSONStore(dir))

	_, err := repo.List(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt collection")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError) {
		t.Errorf("error type = %v, want database_error", platformerrors.TypeOf(err))
	}
}
