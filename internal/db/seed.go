package db

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bizlink/marketplace/internal/models"
)

// Seed loads a small development dataset: two companies, an admin for each
// and one published tender. Only runs when DB_SEED is set; production
// schemas stay untouched.
func Seed(db *gorm.DB) {
	companies := []models.Company{
		{Name: "Northline Industrial", Type: "MANUFACTURER", Sector: "Industrial", Industry: "Machinery", Verified: true},
		{Name: "Harbor Logistics", Type: "SERVICE_PROVIDER", Sector: "Logistics", Industry: "Freight", Verified: false},
	}
	for i := range companies {
		var existing models.Company
		err := db.Where("name = ?", companies[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&companies[i])
		} else {
			companies[i] = existing
		}
	}

	users := []models.CompanyUser{
		{Email: "admin@northline.test", CompanyID: companies[0].ID, IsAdmin: true},
		{Email: "admin@harbor.test", CompanyID: companies[1].ID, IsAdmin: true},
	}
	for i := range users {
		var existing models.CompanyUser
		if errors.Is(db.Where("email = ?", users[i].Email).First(&existing).Error, gorm.ErrRecordNotFound) {
			db.Create(&users[i])
		}
	}

	var tenderCount int64
	db.Model(&models.Tender{}).Count(&tenderCount)
	if tenderCount == 0 {
		db.Create(&models.Tender{
			CompanyID:       companies[0].ID,
			Name:            "CNC spindle assemblies",
			Objective:       "Procure 200 spindle assemblies for line 3",
			Description:     "Sealed-bearing spindle assemblies per attached requirement",
			Requirement:     "ISO 230-2 compliant, 12k RPM rated",
			Nomenclature:    "MACHINE_PARTS",
			PricingCategory: models.PricingPerUnit,
			TotalPrice:      decimal.RequireFromString("18500000"),
			Location:        "Rotterdam",
			DeliveryTerms:   "DAP, 8 weeks",
			PaymentTerms:    "Net 45",
		})
	}
}
