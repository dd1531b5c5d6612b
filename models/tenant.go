package models

import "time"

// Tenant represents one site whose content graph can be exported,
// imported, and snapshotted independently of every other tenant.
type Tenant struct {
	ID        string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
