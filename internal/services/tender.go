package services

import (
	"context"
	"errors"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/directory"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/models"
	"github.com/bizlink/marketplace/internal/policy"
	"github.com/bizlink/marketplace/internal/validation"
	"gorm.io/gorm"
)

// TenderService owns tender records: creation, partial update, tombstoning
// and filtered listing. Every read goes through gorm's soft-delete scope, so
// tombstoned rows never surface.
type TenderService struct {
	DB  *gorm.DB
	Dir directory.Service
}

func NewTenderService(db *gorm.DB, dir directory.Service) *TenderService {
	return &TenderService{DB: db, Dir: dir}
}

// TenderInput carries the fields a company admin submits on creation.
// TotalPrice arrives as a decimal string and is validated as a
// non-negative whole number of arbitrary size.
type TenderInput struct {
	Name            string `json:"name"`
	Objective       string `json:"objective"`
	Description     string `json:"description"`
	Requirement     string `json:"requirement"`
	Nomenclature    string `json:"nomenclature"`
	PricingCategory string `json:"pricing_category"`
	TotalPrice      string `json:"total_price"`
	Location        string `json:"location"`
	DeliveryTerms   string `json:"delivery_terms"`
	PaymentTerms    string `json:"payment_terms"`
	OtherConditions string `json:"other_conditions"`
	ModelNumber     *int64 `json:"model_number"`
}

// TenderUpdate is the partial-update shape: only non-nil fields change.
type TenderUpdate struct {
	Name            *string `json:"name"`
	Objective       *string `json:"objective"`
	Description     *string `json:"description"`
	Requirement     *string `json:"requirement"`
	Nomenclature    *string `json:"nomenclature"`
	PricingCategory *string `json:"pricing_category"`
	TotalPrice      *string `json:"total_price"`
	Location        *string `json:"location"`
	DeliveryTerms   *string `json:"delivery_terms"`
	PaymentTerms    *string `json:"payment_terms"`
	OtherConditions *string `json:"other_conditions"`
	ModelNumber     *int64  `json:"model_number"`
}

// TenderDetail is a tender joined with its owning company's public profile.
type TenderDetail struct {
	models.Tender
	Company *models.CompanyProfile `json:"company,omitempty"`
}

func validateTenderInput(in TenderInput) (models.Tender, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.Required("objective", in.Objective, v)
	validation.Required("description", in.Description, v)
	validation.Required("requirement", in.Requirement, v)
	validation.Required("nomenclature", in.Nomenclature, v)
	validation.Required("location", in.Location, v)
	validation.Required("delivery_terms", in.DeliveryTerms, v)
	validation.Required("payment_terms", in.PaymentTerms, v)
	if !models.PricingCategory(in.PricingCategory).Valid() {
		v["pricing_category"] = "invalid_value"
	}
	price, _ := validation.Money("total_price", in.TotalPrice, v)
	if !v.Empty() {
		return models.Tender{}, apperr.Validation(v)
	}
	return models.Tender{
		Name:            in.Name,
		Objective:       in.Objective,
		Description:     in.Description,
		Requirement:     in.Requirement,
		Nomenclature:    in.Nomenclature,
		PricingCategory: models.PricingCategory(in.PricingCategory),
		TotalPrice:      price,
		Location:        in.Location,
		DeliveryTerms:   in.DeliveryTerms,
		PaymentTerms:    in.PaymentTerms,
		OtherConditions: in.OtherConditions,
		ModelNumber:     in.ModelNumber,
	}, nil
}

// Create persists a tender bound to the acting admin's company.
func (s *TenderService) Create(ctx context.Context, actor identity.Actor, in TenderInput) (*models.Tender, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	tender, err := validateTenderInput(in)
	if err != nil {
		return nil, err
	}
	tender.CompanyID = actor.CompanyID
	if err := s.DB.WithContext(ctx).Create(&tender).Error; err != nil {
		return nil, apperr.Internal("create tender", err)
	}
	return &tender, nil
}

// Update applies the non-nil fields of a partial update. The ownership
// check and the write run in one transaction so a concurrent tombstone
// cannot slip between them, and a failed field validation applies nothing.
func (s *TenderService) Update(ctx context.Context, actor identity.Actor, tenderID uint, in TenderUpdate) (*models.Tender, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	var tender models.Tender
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tender, tenderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.KindNotFound, "tender not found")
			}
			return apperr.Internal("load tender", err)
		}
		if err := policy.CheckOwnership(actor, &tender); err != nil {
			return err
		}
		if err := applyTenderUpdate(&tender, in); err != nil {
			return err
		}
		if err := tx.Save(&tender).Error; err != nil {
			return apperr.Internal("update tender", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

func applyTenderUpdate(t *models.Tender, in TenderUpdate) error {
	v := validation.Violations{}
	set := func(dst *string, field string, src *string, required bool) {
		if src == nil {
			return
		}
		if required {
			validation.Required(field, *src, v)
		}
		*dst = *src
	}
	set(&t.Name, "name", in.Name, true)
	set(&t.Objective, "objective", in.Objective, true)
	set(&t.Description, "description", in.Description, true)
	set(&t.Requirement, "requirement", in.Requirement, true)
	set(&t.Nomenclature, "nomenclature", in.Nomenclature, true)
	set(&t.Location, "location", in.Location, true)
	set(&t.DeliveryTerms, "delivery_terms", in.DeliveryTerms, true)
	set(&t.PaymentTerms, "payment_terms", in.PaymentTerms, true)
	set(&t.OtherConditions, "other_conditions", in.OtherConditions, false)
	if in.PricingCategory != nil {
		pc := models.PricingCategory(*in.PricingCategory)
		if !pc.Valid() {
			v["pricing_category"] = "invalid_value"
		} else {
			t.PricingCategory = pc
		}
	}
	if in.TotalPrice != nil {
		if price, ok := validation.Money("total_price", *in.TotalPrice, v); ok {
			t.TotalPrice = price
		}
	}
	if in.ModelNumber != nil {
		t.ModelNumber = in.ModelNumber
	}
	if !v.Empty() {
		return apperr.Validation(v)
	}
	return nil
}

// Delete tombstones a tender. A second delete on the same row fails
// NotFound because the scoped lookup no longer sees it.
func (s *TenderService) Delete(ctx context.Context, actor identity.Actor, tenderID uint) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tender models.Tender
		if err := tx.First(&tender, tenderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.KindNotFound, "tender not found")
			}
			return apperr.Internal("load tender", err)
		}
		if err := policy.CheckOwnership(actor, &tender); err != nil {
			return err
		}
		if err := tx.Delete(&tender).Error; err != nil {
			return apperr.Internal("delete tender", err)
		}
		return nil
	})
}

// Get is the public single-tender lookup, enriched with the owning
// company's profile.
func (s *TenderService) Get(ctx context.Context, tenderID uint) (*TenderDetail, error) {
	var tender models.Tender
	if err := s.DB.WithContext(ctx).First(&tender, tenderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "tender not found")
		}
		return nil, apperr.Internal("load tender", err)
	}
	return &TenderDetail{Tender: tender, Company: s.Dir.Profile(ctx, tender.CompanyID)}, nil
}

// List returns non-tombstoned tenders matching every filter predicate,
// in insertion order.
func (s *TenderService) List(ctx context.Context, filter TenderFilter, page Page) ([]TenderDetail, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	page = page.Normalize()

	q := s.DB.WithContext(ctx).Model(&models.Tender{}).
		Select("tenders.*").
		Joins("JOIN companies ON companies.id = tenders.company_id AND companies.deleted_at IS NULL")
	if filter.CompanyID != 0 {
		q = q.Where("tenders.company_id = ?", filter.CompanyID)
	}
	if filter.Keyword != "" {
		q = q.Where("LOWER(tenders.name) LIKE ?", likePattern(filter.Keyword))
	}
	if filter.PricingCategory != "" {
		q = q.Where("tenders.pricing_category = ?", filter.PricingCategory)
	}
	// Prices live in a text column to survive sqlite/postgres without
	// precision loss; range predicates compare numerically via CAST.
	if filter.PriceMin != "" {
		q = q.Where("CAST(tenders.total_price AS NUMERIC) >= CAST(? AS NUMERIC)", filter.PriceMin)
	}
	if filter.PriceMax != "" {
		q = q.Where("CAST(tenders.total_price AS NUMERIC) <= CAST(? AS NUMERIC)", filter.PriceMax)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(tenders.location) LIKE ?", likePattern(filter.Location))
	}
	q = applyCompanyFilter(q, filter.Company)

	var tenders []models.Tender
	if err := q.Order("tenders.id ASC").Limit(page.Limit).Offset(page.Offset).Find(&tenders).Error; err != nil {
		return nil, apperr.Internal("list tenders", err)
	}

	companyIDs := make([]uint, 0, len(tenders))
	seen := map[uint]bool{}
	for i := range tenders {
		if !seen[tenders[i].CompanyID] {
			seen[tenders[i].CompanyID] = true
			companyIDs = append(companyIDs, tenders[i].CompanyID)
		}
	}
	profiles := s.Dir.Profiles(ctx, companyIDs)

	out := make([]TenderDetail, 0, len(tenders))
	for i := range tenders {
		out = append(out, TenderDetail{Tender: tenders[i], Company: profiles[tenders[i].CompanyID]})
	}
	return out, nil
}
