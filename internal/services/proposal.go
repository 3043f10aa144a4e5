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
	"gorm.io/gorm/clause"
)

// ProposalService owns proposal records. A company sees only its own
// proposals in the private view; full proposal detail for a tender is
// reserved for the tender's owning company.
type ProposalService struct {
	DB  *gorm.DB
	Dir directory.Service
}

func NewProposalService(db *gorm.DB, dir directory.Service) *ProposalService {
	return &ProposalService{DB: db, Dir: dir}
}

// ProposalDetail is a proposal joined with the bidder's public profile and
// the price comparison against the tender's budget.
type ProposalDetail struct {
	models.Proposal
	Company    *models.CompanyProfile `json:"company,omitempty"`
	Comparison models.PriceComparison `json:"comparison"`
}

// Create submits a bid against a live tender. The tender row is locked
// inside the same transaction as the insert: a concurrent delete either
// waits behind the lock or has already committed its tombstone, in which
// case the locked read misses the row and the bid is rejected. A plain
// re-read would not be enough under read committed, since the delete never
// touches the proposals table.
func (s *ProposalService) Create(ctx context.Context, actor identity.Actor, tenderID uint, proposedPrice string) (*models.Proposal, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	price, ok := validation.Money("proposed_price", proposedPrice, v)
	if !ok {
		return nil, apperr.Validation(v)
	}
	proposal := models.Proposal{
		TenderID:      tenderID,
		CompanyID:     actor.CompanyID,
		ProposedPrice: price,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tender models.Tender
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&tender, tenderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.KindNotFound, "tender not found")
			}
			return apperr.Internal("load tender", err)
		}
		if err := tx.Create(&proposal).Error; err != nil {
			return apperr.Internal("create proposal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdatePrice changes the bid amount; the price is the only mutable field.
func (s *ProposalService) UpdatePrice(ctx context.Context, actor identity.Actor, proposalID uint, proposedPrice string) (*models.Proposal, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	v := validation.Violations{}
	price, ok := validation.Money("proposed_price", proposedPrice, v)
	if !ok {
		return nil, apperr.Validation(v)
	}
	var proposal models.Proposal
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.KindNotFound, "proposal not found")
			}
			return apperr.Internal("load proposal", err)
		}
		if err := policy.CheckOwnership(actor, &proposal); err != nil {
			return err
		}
		proposal.ProposedPrice = price
		if err := tx.Save(&proposal).Error; err != nil {
			return apperr.Internal("update proposal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// Delete tombstones a proposal, company-scoped like every other write.
func (s *ProposalService) Delete(ctx context.Context, actor identity.Actor, proposalID uint) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := tx.First(&proposal, proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(apperr.KindNotFound, "proposal not found")
			}
			return apperr.Internal("load proposal", err)
		}
		if err := policy.CheckOwnership(actor, &proposal); err != nil {
			return err
		}
		if err := tx.Delete(&proposal).Error; err != nil {
			return apperr.Internal("delete proposal", err)
		}
		return nil
	})
}

// ListMine returns the caller company's live proposals across all tenders.
// Proposals against since-tombstoned tenders are still listed; tombstoning
// a tender does not cascade.
func (s *ProposalService) ListMine(ctx context.Context, actor identity.Actor, page Page) ([]models.Proposal, error) {
	page = page.Normalize()
	var proposals []models.Proposal
	err := s.DB.WithContext(ctx).
		Where("company_id = ?", actor.CompanyID).
		Order("id ASC").Limit(page.Limit).Offset(page.Offset).
		Find(&proposals).Error
	if err != nil {
		return nil, apperr.Internal("list proposals", err)
	}
	return proposals, nil
}

// ListForTender returns every live proposal against one of the caller's own
// tenders, each joined with the bidder's public profile and compared
// against the tender's budget. Callers outside the owning company get
// Forbidden, indistinguishable from NotFound at the boundary.
func (s *ProposalService) ListForTender(ctx context.Context, actor identity.Actor, tenderID uint, filter CompanyFilter, page Page) ([]ProposalDetail, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	page = page.Normalize()

	var tender models.Tender
	if err := s.DB.WithContext(ctx).First(&tender, tenderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.KindNotFound, "tender not found")
		}
		return nil, apperr.Internal("load tender", err)
	}
	if err := policy.CheckOwnership(actor, &tender); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Model(&models.Proposal{}).
		Select("proposals.*").
		Joins("JOIN companies ON companies.id = proposals.company_id AND companies.deleted_at IS NULL").
		Where("proposals.tender_id = ?", tenderID)
	q = applyCompanyFilter(q, filter)

	var proposals []models.Proposal
	if err := q.Order("proposals.id ASC").Limit(page.Limit).Offset(page.Offset).Find(&proposals).Error; err != nil {
		return nil, apperr.Internal("list proposals for tender", err)
	}

	companyIDs := make([]uint, 0, len(proposals))
	seen := map[uint]bool{}
	for i := range proposals {
		if !seen[proposals[i].CompanyID] {
			seen[proposals[i].CompanyID] = true
			companyIDs = append(companyIDs, proposals[i].CompanyID)
		}
	}
	profiles := s.Dir.Profiles(ctx, companyIDs)

	out := make([]ProposalDetail, 0, len(proposals))
	for i := range proposals {
		out = append(out, ProposalDetail{
			Proposal:   proposals[i],
			Company:    profiles[proposals[i].CompanyID],
			Comparison: models.ComparePrices(proposals[i].ProposedPrice, tender.TotalPrice),
		})
	}
	return out, nil
}
