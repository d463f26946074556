package client_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"opsagent/internal/domain/client"
	"opsagent/internal/utils/platformerrors"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	clients map[string]*client.Client
	order   []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{clients: make(map[string]*client.Client)}
}

func (f *fakeRepository) Create(_ context.Context, c *client.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "client not found: "+id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	for _, id := range f.order {
		if strings.EqualFold(f.clients[id].Email, email) {
			cp := *f.clients[id]
			return &cp, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "client not found by email")
}

func (f *fakeRepository) Update(ctx context.Context, c *client.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "client not found: "+c.ID)
	}
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.clients[id]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "client not found: "+id)
	}
	delete(f.clients, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRepository) List(_ context.Context) ([]*client.Client, error) {
	out := make([]*client.Client, 0, len(f.order))
	for _, id := range f.order {
		cp := *f.clients[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.clients)), nil
}

func newTestService() (*client.Service, *fakeRepository) {
	repo := newFakeRepository()
	return client.NewService(repo, zerolog.Nop()), repo
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	got, err := svc.CreateClient(ctx, &client.CreateRequest{
		Name:    "ACME Corp",
		Email:   "Billing@ACME.com",
		Company: "ACME",
	})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if !strings.HasPrefix(got.ID, "cli_") {
		t.Errorf("ID = %q, want cli_ prefix", got.ID)
	}
	if got.Email != "billing@acme.com" {
		t.Errorf("Email = %q, want lowercased", got.Email)
	}
	if got.Status != client.StatusActive {
		t.Errorf("Status = %q, want %q", got.Status, client.StatusActive)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	stored, err := svc.GetClient(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetClient() error = %v", err)
	}
	if stored.Name != "ACME Corp" {
		t.Errorf("round trip Name = %q", stored.Name)
	}
}

func TestCreateClientValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  *client.CreateRequest
	}{
		{name: "missing name", req: &client.CreateRequest{Email: "a@b.com"}},
		{name: "missing email", req: &client.CreateRequest{Name: "ACME"}},
		{name: "malformed email", req: &client.CreateRequest{Name: "ACME", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateClient(ctx, tt.req)
			if !platformerrors.IsValidationError(err) {
				t.Errorf("CreateClient() error = %v, want validation error", err)
			}
		})
	}
}

func TestCreateClientDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "A", Email: "dup@corp.com"}); err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	_, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "B", Email: "DUP@corp.com"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("CreateClient() error = %v, want conflict", err)
	}
}

func TestGetClientNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetClient(context.Background(), "cli_missing")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetClient() error = %v, want not found", err)
	}
}

func TestUpdateClientPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateClient(ctx, &client.CreateRequest{
		Name:  "ACME Corp",
		Email: "acme@corp.com",
		Phone: "+1-555-0100",
	})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	before := created.UpdatedAt
	time.Sleep(5 * time.Millisecond)

	phone := "+1-555-0199"
	updated, err := svc.UpdateClient(ctx, created.ID, &client.UpdateRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateClient() error = %v", err)
	}
	if updated.Phone != phone {
		t.Errorf("Phone = %q, want %q", updated.Phone, phone)
	}
	if updated.Name != "ACME Corp" || updated.Email != "acme@corp.com" {
		t.Error("untouched fields changed")
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("UpdatedAt not bumped")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestUpdateClientInvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "A", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	bad := client.Status("frozen")
	_, err = svc.UpdateClient(ctx, created.ID, &client.UpdateRequest{Status: &bad})
	if !platformerrors.IsValidationError(err) {
		t.Errorf("UpdateClient() error = %v, want validation error", err)
	}
}

func TestUpdateClientEmailConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "A", Email: "a@corp.com"}); err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	b, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "B", Email: "b@corp.com"})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}

	taken := "a@corp.com"
	_, err = svc.UpdateClient(ctx, b.ID, &client.UpdateRequest{Email: &taken})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("UpdateClient() error = %v, want conflict", err)
	}
}

func TestUpdateClientBalance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "A", Email: "a@b.com", Balance: 100})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}

	updated, err := svc.UpdateClientBalance(ctx, created.ID, -150)
	if err != nil {
		t.Fatalf("UpdateClientBalance() error = %v", err)
	}
	if updated.Balance != -50 {
		t.Errorf("Balance = %v, want -50", updated.Balance)
	}

	_, err = svc.UpdateClientBalance(ctx, "cli_missing", 10)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("UpdateClientBalance() error = %v, want not found", err)
	}
}

func TestDeleteClient(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "A", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if err := svc.DeleteClient(ctx, created.ID); err != nil {
		t.Fatalf("DeleteClient() error = %v", err)
	}
	if _, err := svc.GetClient(ctx, created.ID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetClient() after delete error = %v, want not found", err)
	}
	if err := svc.DeleteClient(ctx, created.ID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("DeleteClient() twice error = %v, want not found", err)
	}
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	for _, email := range []string{"a@corp.com", "b@corp.com", "c@corp.com"} {
		if _, err := svc.CreateClient(ctx, &client.CreateRequest{Name: "X", Email: email}); err != nil {
			t.Fatalf("CreateClient() error = %v", err)
		}
	}

	clients, err := svc.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("ListClients() len = %d, want 3", len(clients))
	}
	if clients[0].Email != "a@corp.com" || clients[2].Email != "c@corp.com" {
		t.Error("ListClients() order not preserved")
	}
}
