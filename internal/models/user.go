package models

import (
	"time"

	"gorm.io/gorm"
)

// CompanyUser is the account an actor authenticates as. Every user acts on
// behalf of exactly one company; ownership of tenders and proposals sits on
// the company, so any admin of the same company is an interchangeable owner.
type CompanyUser struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email     string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	CompanyID uint     `gorm:"index;not null" json:"company_id"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`
	// IsAdmin gates every mutating operation; non-admin users are read-only.
	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`
}
