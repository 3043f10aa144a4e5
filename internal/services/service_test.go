package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bizlink/marketplace/internal/db"
	"github.com/bizlink/marketplace/internal/directory"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(db.Models()...))
	return gdb
}

func newServices(t *testing.T) (*gorm.DB, *TenderService, *ProposalService, *MarketplaceService) {
	t.Helper()
	gdb := setupTestDB(t)
	dir := directory.New(gdb)
	tenders := NewTenderService(gdb, dir)
	proposals := NewProposalService(gdb, dir)
	market := NewMarketplaceService(gdb, tenders, proposals)
	return gdb, tenders, proposals, market
}

func seedCompany(t *testing.T, gdb *gorm.DB, name string, verified bool) models.Company {
	t.Helper()
	c := models.Company{Name: name, Type: "MANUFACTURER", Sector: "Industrial", Industry: "Machinery", Verified: verified}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func adminOf(t *testing.T, gdb *gorm.DB, c models.Company) identity.Actor {
	t.Helper()
	u := models.CompanyUser{Email: fmt.Sprintf("admin+%d@%s.test", c.ID, c.Name), CompanyID: c.ID, IsAdmin: true}
	require.NoError(t, gdb.Create(&u).Error)
	return identity.Actor{UserID: u.ID, CompanyID: c.ID, IsAdmin: true}
}

func userOf(t *testing.T, gdb *gorm.DB, c models.Company) identity.Actor {
	t.Helper()
	u := models.CompanyUser{Email: fmt.Sprintf("user+%d@%s.test", c.ID, c.Name), CompanyID: c.ID, IsAdmin: false}
	require.NoError(t, gdb.Create(&u).Error)
	return identity.Actor{UserID: u.ID, CompanyID: c.ID, IsAdmin: false}
}

func validTenderInput() TenderInput {
	return TenderInput{
		Name:            "CNC spindle assemblies",
		Objective:       "Procure 200 spindle assemblies",
		Description:     "Sealed-bearing spindle assemblies",
		Requirement:     "ISO 230-2 compliant",
		Nomenclature:    "MACHINE_PARTS",
		PricingCategory: "PERUNIT",
		TotalPrice:      "1000",
		Location:        "Rotterdam",
		DeliveryTerms:   "DAP, 8 weeks",
		PaymentTerms:    "Net 45",
	}
}
