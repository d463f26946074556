package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"opsagent/internal/config"
	"opsagent/internal/domain/client"
	"opsagent/internal/domain/employee"
	"opsagent/internal/domain/order"
)

// Seeder loads demo fixtures through the regular services so IDs, badges
// and totals come out exactly as they would for real requests.
type Seeder struct {
	cfg       *config.Config
	clients   *client.Service
	orders    *order.Service
	employees *employee.Service
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewSeeder(
	cfg *config.Config,
	clients *client.Service,
	orders *order.Service,
	employees *employee.Service,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		cfg:       cfg,
		clients:   clients,
		orders:    orders,
		employees: employees,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger.With().Str("component", "seeder").Logger(),
	}
}

type fixtureFile struct {
	Departments []fixtureDepartment `yaml:"departments" validate:"dive"`
	Clients     []fixtureClient     `yaml:"clients" validate:"dive"`
	Employees   []fixtureEmployee   `yaml:"employees" validate:"dive"`
	Orders      []fixtureOrder      `yaml:"orders" validate:"dive"`
}

type fixtureDepartment struct {
	Code string `yaml:"code" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

type fixtureClient struct {
	Name    string  `yaml:"name" validate:"required"`
	Email   string  `yaml:"email" validate:"required,email"`
	Phone   string  `yaml:"phone"`
	Company string  `yaml:"company"`
	Balance float64 `yaml:"balance"`
}

type fixtureEmployee struct {
	Name       string  `yaml:"name" validate:"required"`
	Email      string  `yaml:"email" validate:"required,email"`
	Department string  `yaml:"department" validate:"required"`
	Position   string  `yaml:"position" validate:"required"`
	Salary     float64 `yaml:"salary" validate:"gte=0"`
}

type fixtureItem struct {
	Description string  `yaml:"description" validate:"required"`
	Quantity    int     `yaml:"quantity" validate:"gte=1"`
	UnitPrice   float64 `yaml:"unit_price" validate:"gte=0"`
}

type fixtureOrder struct {
	Client string        `yaml:"client" validate:"required"` // references a seeded client by email
	Items  []fixtureItem `yaml:"items" validate:"min=1,dive"`
}

// Run seeds demo data when enabled and the store is still empty. An already
// populated store is left alone.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.cfg.SeedDemoData {
		return nil
	}

	count, err := s.clients.CountClients(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info().Msg("store already populated, skipping demo seed")
		return nil
	}

	data, err := os.ReadFile(s.cfg.SeedFile)
	if err != nil {
		return err
	}
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return err
	}
	if err := s.validate.Struct(fixtures); err != nil {
		return fmt.Errorf("invalid seed file %s: %w", s.cfg.SeedFile, err)
	}

	for _, d := range fixtures.Departments {
		if _, err := s.employees.CreateDepartment(ctx, &employee.CreateDepartmentRequest{Code: d.Code, Name: d.Name}); err != nil {
			return err
		}
	}

	clientIDs := make(map[string]string, len(fixtures.Clients))
	for _, c := range fixtures.Clients {
		created, err := s.clients.CreateClient(ctx, &client.CreateRequest{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Company: c.Company,
			Balance: c.Balance,
		})
		if err != nil {
			return err
		}
		clientIDs[c.Email] = created.ID
	}

	for _, e := range fixtures.Employees {
		if _, err := s.employees.CreateEmployee(ctx, &employee.CreateRequest{
			Name:       e.Name,
			Email:      e.Email,
			Department: e.Department,
			Position:   e.Position,
			Salary:     e.Salary,
		}); err != nil {
			return err
		}
	}

	for _, o := range fixtures.Orders {
		clientID, ok := clientIDs[o.Client]
		if !ok {
			return errors.New("seed order references unknown client " + o.Client)
		}
		items := make([]order.Item, len(o.Items))
		for i, item := range o.Items {
			items[i] = order.Item{Description: item.Description, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		}
		if _, err := s.orders.CreateOrder(ctx, &order.CreateRequest{ClientID: clientID, Items: items}); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("departments", len(fixtures.Departments)).
		Int("clients", len(fixtures.Clients)).
		Int("employees", len(fixtures.Employees)).
		Int("orders", len(fixtures.Orders)).
		Msg("demo data seeded")
	return nil
}
