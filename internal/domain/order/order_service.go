package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"opsagent/internal/utils/platformerrors"
)

// Service handles business logic for ERP orders.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates an order service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "order-service").Logger(),
	}
}

// CreateOrder places a new order. The client reference is recorded as given;
// existence of the client is not checked here.
func (s *Service) CreateOrder(ctx context.Context, req *CreateRequest) (*Order, error) {
	if err := validateCreate(req); err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "order validation failed", err)
	}

	now := time.Now()
	seq, err := s.repo.NextSequence(ctx, now)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to allocate order number")
	}

	o := &Order{
		ID:        FormatID(now, seq),
		ClientID:  strings.TrimSpace(req.ClientID),
		Items:     req.Items,
		Total:     computeTotal(req.Items),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create order")
	}

	s.logger.Info().Str("order_id", o.ID).Str("client_id", o.ClientID).Float64("total", o.Total).Msg("order created")
	return o, nil
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get order")
	}
	return o, nil
}

// UpdateOrderStatus moves an order to a new status. Any member of the status
// enum is accepted regardless of the current state.
func (s *Service) UpdateOrderStatus(ctx context.Context, id, newStatus string) (*Order, error) {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid order status", err)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get order")
	}

	o.Status = status
	o.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update order status")
	}

	s.logger.Info().Str("order_id", o.ID).Str("status", string(status)).Msg("order status updated")
	return o, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete order")
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// ListOrders returns all orders in creation order.
func (s *Service) ListOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list orders")
	}
	return orders, nil
}

// CountOrders returns the number of stored orders.
func (s *Service) CountOrders(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count orders")
	}
	return n, nil
}

func validateCreate(req *CreateRequest) error {
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("client_id is required")
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("item %d: description is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d: unit price cannot be negative", i)
		}
	}
	return nil
}

// computeTotal sums line amounts with decimal arithmetic so repeated cents
// do not drift.
func computeTotal(items []Item) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}
