package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"opsagent/internal/domain/order"
	"opsagent/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Order{})
}

// ===============================================
// Order Schema
// ===============================================

// Order represents the database schema for ERP orders. Line items are kept
// as a jsonb document; they are only ever read and written as a whole.
type Order struct {
	BaseModel
	PublicID string         `gorm:"uniqueIndex;size:64;not null"`
	ClientID string         `gorm:"size:64;not null;index"`
	Items    datatypes.JSON `gorm:"type:jsonb;not null"`
	Total    float64        `gorm:"not null"`
	Status   string         `gorm:"size:32;not null;index"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "opsagent.orders"
}

// ===============================================
// Conversion Methods
// ===============================================

// NewSchemaOrder creates a database schema from a domain order
func NewSchemaOrder(o *order.Order) (*Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	return &Order{
		BaseModel: BaseModel{
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		},
		PublicID: o.ID,
		ClientID: o.ClientID,
		Items:    datatypes.JSON(items),
		Total:    o.Total,
		Status:   string(o.Status),
	}, nil
}

// EtoD converts database schema to domain order (Entity to Domain)
func (o *Order) EtoD() (*order.Order, error) {
	var items []order.Item
	if len(o.Items) > 0 {
		if err := json.Unmarshal(o.Items, &items); err != nil {
			return nil, err
		}
	}
	return &order.Order{
		ID:        o.PublicID,
		ClientID:  o.ClientID,
		Items:     items,
		Total:     o.Total,
		Status:    order.Status(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}
