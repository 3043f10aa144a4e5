// Package directory is the company-directory collaborator boundary: given a
// company id, return its public profile for listing enrichment. Lookups are
// best-effort; a failure degrades the profile to nil instead of failing the
// marketplace response.
package directory

import (
	"context"
	"log"

	"github.com/bizlink/marketplace/internal/models"
	"gorm.io/gorm"
)

// Service resolves public company profiles.
type Service interface {
	Profile(ctx context.Context, companyID uint) *models.CompanyProfile
	Profiles(ctx context.Context, companyIDs []uint) map[uint]*models.CompanyProfile
}

// DBDirectory serves profiles straight from the shared store.
type DBDirectory struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *DBDirectory {
	return &DBDirectory{DB: db}
}

// Profile returns the public profile or nil when the company is missing,
// tombstoned, or the lookup fails.
func (d *DBDirectory) Profile(ctx context.Context, companyID uint) *models.CompanyProfile {
	var company models.Company
	if err := d.DB.WithContext(ctx).First(&company, companyID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("directory: profile lookup company=%d: %v", companyID, err)
		}
		return nil
	}
	return company.PublicProfile()
}

// Profiles batch-resolves a set of companies in one query. Missing entries
// are simply absent from the map.
func (d *DBDirectory) Profiles(ctx context.Context, companyIDs []uint) map[uint]*models.CompanyProfile {
	out := make(map[uint]*models.CompanyProfile, len(companyIDs))
	if len(companyIDs) == 0 {
		return out
	}
	var companies []models.Company
	if err := d.DB.WithContext(ctx).Where("id IN ?", companyIDs).Find(&companies).Error; err != nil {
		log.Printf("directory: batch profile lookup: %v", err)
		return out
	}
	for i := range companies {
		out[companies[i].ID] = companies[i].PublicProfile()
	}
	return out
}
