// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Survey represents a survey record in the Cohort application.
// CreatedByID is set by the server at creation time and never changes.
type Survey struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
