package client

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"opsagent/internal/utils/idgen"
	"opsagent/internal/utils/platformerrors"
)

const (
	idPrefix = "cli"
	idLength = 20
)

// Service handles business logic for CRM clients.
type Service struct {
	repo      Repository
	validator *Validator
	logger    zerolog.Logger
}

// NewService creates a client service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(nil),
		logger:    logger.With().Str("component", "client-service").Logger(),
	}
}

// CreateClient registers a new client. Email must not be in use.
func (s *Service) CreateClient(ctx context.Context, req *CreateRequest) (*Client, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "client validation failed", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	id, err := idgen.GenerateSecureID(idPrefix, idLength)
	if err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate client ID", err)
	}

	now := time.Now()
	c := &Client{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Balance:   req.Balance,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create client")
	}

	s.logger.Info().Str("client_id", c.ID).Str("email", c.Email).Msg("client created")
	return c, nil
}

// GetClient retrieves a client by ID.
func (s *Service) GetClient(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get client")
	}
	return c, nil
}

// UpdateClient applies a partial update. Only non-nil fields change;
// UpdatedAt is always bumped.
func (s *Service) UpdateClient(ctx context.Context, id string, req *UpdateRequest) (*Client, error) {
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, platformerrors.NewErrorWithCause(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "client validation failed", err)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get client")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != c.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
		}
		c.Email = email
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		c.Company = strings.TrimSpace(*req.Company)
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update client")
	}

	s.logger.Info().Str("client_id", c.ID).Msg("client updated")
	return c, nil
}

// UpdateClientBalance adjusts the client's balance by a signed amount.
func (s *Service) UpdateClientBalance(ctx context.Context, id string, amount float64) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get client")
	}

	c.Balance += amount
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update client balance")
	}

	s.logger.Info().Str("client_id", c.ID).Float64("amount", amount).Float64("balance", c.Balance).Msg("client balance adjusted")
	return c, nil
}

// DeleteClient removes a client.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete client")
	}
	s.logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// ListClients returns all clients in creation order.
func (s *Service) ListClients(ctx context.Context) ([]*Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list clients")
	}
	return clients, nil
}

// CountClients returns the number of stored clients.
func (s *Service) CountClients(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count clients")
	}
	return n, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil
		}
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check email uniqueness")
	}
	if existing != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "email already in use: "+email)
	}
	return nil
}
