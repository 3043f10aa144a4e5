package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the directory entity tenders and proposals hang off.
// The marketplace never mutates companies; it reads their public
// attributes for filtering and listing enrichment.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Type         string `gorm:"size:100" json:"type,omitempty"`
	EntityType   string `gorm:"size:100" json:"entity_type,omitempty"`
	BusinessType string `gorm:"size:100" json:"business_type,omitempty"`
	Sector       string `gorm:"size:100" json:"sector,omitempty"`
	Industry     string `gorm:"size:100" json:"industry,omitempty"`
	Verified     bool   `gorm:"not null;default:false" json:"verified"`
	LogoURL      string `gorm:"size:500" json:"logo_url,omitempty"`
}

// CompanyProfile is the public projection served in listings. Tender and
// proposal rows embed it; a directory failure degrades it to nil rather
// than failing the whole response.
type CompanyProfile struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	EntityType   string `json:"entity_type,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Verified     bool   `json:"verified"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// PublicProfile strips the company down to its listing projection.
func (c *Company) PublicProfile() *CompanyProfile {
	return &CompanyProfile{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		EntityType:   c.EntityType,
		BusinessType: c.BusinessType,
		Sector:       c.Sector,
		Industry:     c.Industry,
		Verified:     c.Verified,
		LogoURL:      c.LogoURL,
	}
}
