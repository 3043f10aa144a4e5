package services

import (
	"strings"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/models"
	"github.com/bizlink/marketplace/internal/validation"
	"gorm.io/gorm"
)

// CompanyFilter holds the owning/bidding-company predicates shared by
// tender and proposal listings. String fields match as case-insensitive
// substrings; Verified matches exactly when set.
type CompanyFilter struct {
	Verified     *bool
	Name         string
	Type         string
	EntityType   string
	BusinessType string
	Sector       string
	Industry     string
}

// TenderFilter is the ANDed predicate set for ListTenders.
type TenderFilter struct {
	// Keyword matches the tender name, case-insensitive substring.
	Keyword         string
	PricingCategory string
	// PriceMin/PriceMax are inclusive bounds as decimal strings.
	PriceMin string
	PriceMax string
	Location string
	Company  CompanyFilter
	// CompanyID pins the listing to one owning company (the "my tenders"
	// lens). Zero means no restriction.
	CompanyID uint
}

// Validate rejects malformed filter values before any query is built.
func (f TenderFilter) Validate() error {
	v := validation.Violations{}
	if f.PricingCategory != "" && !models.PricingCategory(f.PricingCategory).Valid() {
		v["pricing_category"] = "invalid_value"
	}
	if f.PriceMin != "" {
		validation.Money("price_min", f.PriceMin, v)
	}
	if f.PriceMax != "" {
		validation.Money("price_max", f.PriceMax, v)
	}
	if !v.Empty() {
		return apperr.Validation(v)
	}
	return nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// applyCompanyFilter adds the company predicates against an already-joined
// companies table.
func applyCompanyFilter(q *gorm.DB, f CompanyFilter) *gorm.DB {
	if f.Verified != nil {
		q = q.Where("companies.verified = ?", *f.Verified)
	}
	sub := []struct {
		col string
		val string
	}{
		{"companies.name", f.Name},
		{"companies.type", f.Type},
		{"companies.entity_type", f.EntityType},
		{"companies.business_type", f.BusinessType},
		{"companies.sector", f.Sector},
		{"companies.industry", f.Industry},
	}
	for _, p := range sub {
		if p.val != "" {
			q = q.Where("LOWER("+p.col+") LIKE ?", likePattern(p.val))
		}
	}
	return q
}
