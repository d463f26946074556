package dbschema

import (
	"opsagent/internal/domain/client"
	"opsagent/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Client{})
}

// ===============================================
// Client Schema
// ===============================================

// Client represents the database schema for CRM clients
type Client struct {
	BaseModel
	PublicID string  `gorm:"uniqueIndex;size:64;not null"`
	Name     string  `gorm:"size:255;not null"`
	Email    string  `gorm:"size:255;not null;uniqueIndex"`
	Phone    *string `gorm:"size:64"`
	Company  *string `gorm:"size:255"`
	Balance  float64 `gorm:"not null;default:0"`
	Status   string  `gorm:"size:32;not null;index"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "opsagent.clients"
}

// ===============================================
// Conversion Methods
// ===============================================

// EtoD converts database schema to domain client (Entity to Domain)
func (c *Client) EtoD() *client.Client {
	out := &client.Client{
		ID:        c.PublicID,
		Name:      c.Name,
		Email:     c.Email,
		Balance:   c.Balance,
		Status:    client.Status(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Phone != nil {
		out.Phone = *c.Phone
	}
	if c.Company != nil {
		out.Company = *c.Company
	}
	return out
}

// ClientDtoE converts domain client to database schema (Domain to Entity)
func ClientDtoE(c *client.Client) *Client {
	out := &Client{
		BaseModel: BaseModel{
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Balance:  c.Balance,
		Status:   string(c.Status),
	}
	if c.Phone != "" {
		phone := c.Phone
		out.Phone = &phone
	}
	if c.Company != "" {
		company := c.Company
		out.Company = &company
	}
	return out
}
