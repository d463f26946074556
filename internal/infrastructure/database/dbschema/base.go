package dbschema

import "time"

// BaseModel carries the surrogate key and timestamps shared by all rows.
// Domain code only ever sees the public ID.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
