package order_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"opsagent/internal/domain/order"
	"opsagent/internal/utils/platformerrors"
)

type fakeRepository struct {
	orders map[string]*order.Order
	ids    []string
	seqs   map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders: make(map[string]*order.Order),
		seqs:   make(map[string]int),
	}
}

func (f *fakeRepository) Create(_ context.Context, o *order.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	f.ids = append(f.ids, o.ID)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "order not found: "+id)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepository) Update(ctx context.Context, o *order.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "order not found: "+o.ID)
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "order not found: "+id)
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeRepository) List(_ context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(f.ids))
	for _, id := range f.ids {
		if o, ok := f.orders[id]; ok {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeRepository) NextSequence(_ context.Context, day time.Time) (int, error) {
	key := day.Format("20060102")
	f.seqs[key]++
	return f.seqs[key], nil
}

func newTestService() *order.Service {
	return order.NewService(newFakeRepository(), zerolog.Nop())
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	got, err := svc.CreateOrder(ctx, &order.CreateRequest{
		ClientID: "cli_abc",
		Items: []order.Item{
			{Description: "Widget", Quantity: 3, UnitPrice: 9.99},
			{Description: "Gadget", Quantity: 1, UnitPrice: 45.50},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	wantPrefix := "ORD-" + time.Now().Format("20060102") + "-"
	if !strings.HasPrefix(got.ID, wantPrefix) {
		t.Errorf("ID = %q, want prefix %q", got.ID, wantPrefix)
	}
	if !strings.HasSuffix(got.ID, "-001") {
		t.Errorf("ID = %q, want first sequence -001", got.ID)
	}
	if got.Status != order.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Total != 75.47 {
		t.Errorf("Total = %v, want 75.47", got.Total)
	}
}

func TestCreateOrderSequencePerDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := &order.CreateRequest{
		ClientID: "cli_abc",
		Items:    []order.Item{{Description: "Widget", Quantity: 1, UnitPrice: 1}},
	}

	first, err := svc.CreateOrder(ctx, req)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	second, err := svc.CreateOrder(ctx, req)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if !strings.HasSuffix(first.ID, "-001") || !strings.HasSuffix(second.ID, "-002") {
		t.Errorf("sequence = %q, %q; want -001, -002", first.ID, second.ID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name string
		req  *order.CreateRequest
	}{
		{name: "missing client", req: &order.CreateRequest{Items: []order.Item{{Description: "W", Quantity: 1, UnitPrice: 1}}}},
		{name: "no items", req: &order.CreateRequest{ClientID: "cli_a"}},
		{name: "zero quantity", req: &order.CreateRequest{ClientID: "cli_a", Items: []order.Item{{Description: "W", Quantity: 0, UnitPrice: 1}}}},
		{name: "negative price", req: &order.CreateRequest{ClientID: "cli_a", Items: []order.Item{{Description: "W", Quantity: 1, UnitPrice: -1}}}},
		{name: "blank description", req: &order.CreateRequest{ClientID: "cli_a", Items: []order.Item{{Description: "  ", Quantity: 1, UnitPrice: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(ctx, tt.req); !platformerrors.IsValidationError(err) {
				t.Errorf("CreateOrder() error = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateOrder(ctx, &order.CreateRequest{
		ClientID: "cli_abc",
		Items:    []order.Item{{Description: "Widget", Quantity: 1, UnitPrice: 10}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	updated, err := svc.UpdateOrderStatus(ctx, created.ID, "SHIPPED")
	if err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	if updated.Status != order.StatusShipped {
		t.Errorf("Status = %q, want shipped", updated.Status)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	// delivered back to pending is allowed; only enum membership is checked
	if _, err := svc.UpdateOrderStatus(ctx, created.ID, "pending"); err != nil {
		t.Errorf("UpdateOrderStatus() back to pending error = %v", err)
	}
}

func TestUpdateOrderStatusInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateOrder(ctx, &order.CreateRequest{
		ClientID: "cli_abc",
		Items:    []order.Item{{Description: "Widget", Quantity: 1, UnitPrice: 10}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	_, err = svc.UpdateOrderStatus(ctx, created.ID, "teleported")
	if !platformerrors.IsValidationError(err) {
		t.Fatalf("UpdateOrderStatus() error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "pending") || !strings.Contains(err.Error(), "cancelled") {
		t.Errorf("error %q does not name the allowed statuses", err.Error())
	}

	unchanged, err := svc.GetOrder(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if unchanged.Status != order.StatusPending {
		t.Errorf("Status = %q after rejected update, want pending", unchanged.Status)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateOrderStatus(context.Background(), "ORD-20240101-001", "shipped")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("UpdateOrderStatus() error = %v, want not found", err)
	}
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	items := make([]order.Item, 10)
	for i := range items {
		items[i] = order.Item{Description: "Part", Quantity: 1, UnitPrice: 0.1}
	}
	got, err := svc.CreateOrder(ctx, &order.CreateRequest{ClientID: "cli_abc", Items: items})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if got.Total != 1.0 {
		t.Errorf("Total = %v, want exactly 1.0", got.Total)
	}
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateOrder(ctx, &order.CreateRequest{
		ClientID: "cli_abc",
		Items:    []order.Item{{Description: "Widget", Quantity: 1, UnitPrice: 10}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if err := svc.DeleteOrder(ctx, created.ID); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}
	if _, err := svc.GetOrder(ctx, created.ID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetOrder() after delete error = %v, want not found", err)
	}
}
