package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingCategory says how a tender's budget is quoted.
type PricingCategory string

const (
	PricingPerUnit PricingCategory = "PERUNIT"
	PricingMonthly PricingCategory = "MONTHLY"
)

// Valid reports whether the category is one of the wire literals.
func (p PricingCategory) Valid() bool {
	switch p {
	case PricingPerUnit, PricingMonthly:
		return true
	default:
		return false
	}
}

// Tender is a procurement request published by a company.
//
// TotalPrice is a whole-number currency amount in minor units. It can exceed
// 2^63 so it is kept in a text column and handled as decimal.Decimal
// end to end; it crosses the wire as a quoted decimal string and never
// passes through a float.
type Tender struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// CompanyID is bound at creation from the acting admin's company and
	// never changes afterwards.
	CompanyID uint     `gorm:"index;not null" json:"company_id"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`

	Name            string          `gorm:"size:255;not null" json:"name"`
	Objective       string          `gorm:"size:500" json:"objective"`
	Description     string          `gorm:"size:2000" json:"description"`
	Requirement     string          `gorm:"size:2000" json:"requirement"`
	Nomenclature    string          `gorm:"size:255" json:"nomenclature"`
	PricingCategory PricingCategory `gorm:"size:20;not null" json:"pricing_category"`
	TotalPrice      decimal.Decimal `gorm:"type:varchar(80);not null" json:"total_price"`
	Location        string          `gorm:"size:255" json:"location"`
	DeliveryTerms   string          `gorm:"size:1000" json:"delivery_terms"`
	PaymentTerms    string          `gorm:"size:1000" json:"payment_terms"`
	OtherConditions string          `gorm:"size:2000" json:"other_conditions,omitempty"`
	ModelNumber     *int64          `json:"model_number,omitempty"`
}

// GetCompanyID implements the policy.CompanyOwned interface.
func (t *Tender) GetCompanyID() uint {
	return t.CompanyID
}
