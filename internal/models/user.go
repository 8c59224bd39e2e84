// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of profile roles.
type Role string

const (
	// RoleResearcher may create surveys.
	RoleResearcher Role = "researcher"
	// RoleSubject may only read surveys.
	RoleSubject Role = "subject"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleResearcher, RoleSubject:
		return true
	}
	return false
}

// User represents an account in the Cohort application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Profile   *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Surveys   []Survey       `gorm:"foreignKey:CreatedByID" json:"surveys,omitempty"`
}

// Profile carries the role and bio attached to a user. Every user has
// exactly one; it is created in the same transaction as the user row.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	Role      Role      `gorm:"not null" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}
