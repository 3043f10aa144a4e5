package services

import (
	"context"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/models"
	"gorm.io/gorm"
)

// MarketplaceService composes the registry and the ledger into the three
// consumer views, each under its own authorization lens. All operations
// here are read compositions; nothing mutates.
type MarketplaceService struct {
	DB        *gorm.DB
	Tenders   *TenderService
	Proposals *ProposalService
}

func NewMarketplaceService(db *gorm.DB, tenders *TenderService, proposals *ProposalService) *MarketplaceService {
	return &MarketplaceService{DB: db, Tenders: tenders, Proposals: proposals}
}

// MyTenderEntry is a tender row in the owner's view, carrying the mutate
// affordances the public view must not expose.
type MyTenderEntry struct {
	TenderDetail
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// AppliedProposal is one row of the "my applied proposals" view: the
// proposal, its parent tender when that tender is still live, and the price
// comparison when it can be computed.
type AppliedProposal struct {
	models.Proposal
	Tender     *TenderDetail           `json:"tender,omitempty"`
	Comparison *models.PriceComparison `json:"comparison,omitempty"`
}

// AllTenders is the public lens: plain filtered listing, no proposal data.
func (s *MarketplaceService) AllTenders(ctx context.Context, filter TenderFilter, page Page) ([]TenderDetail, error) {
	filter.CompanyID = 0
	return s.Tenders.List(ctx, filter, page)
}

// MyTenders forces the filter to the caller's company and decorates each
// row with the admin-only edit/delete affordances.
func (s *MarketplaceService) MyTenders(ctx context.Context, actor identity.Actor, filter TenderFilter, page Page) ([]MyTenderEntry, error) {
	filter.CompanyID = actor.CompanyID
	details, err := s.Tenders.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	out := make([]MyTenderEntry, 0, len(details))
	for _, d := range details {
		out = append(out, MyTenderEntry{TenderDetail: d, CanEdit: actor.IsAdmin, CanDelete: actor.IsAdmin})
	}
	return out, nil
}

// MyProposals lists the caller company's bids, each enriched with its
// parent tender. Tenders are fetched once per distinct tender id, not per
// proposal. A proposal whose tender has since been tombstoned keeps its row
// with no tender detail and no comparison.
func (s *MarketplaceService) MyProposals(ctx context.Context, actor identity.Actor, page Page) ([]AppliedProposal, error) {
	proposals, err := s.Proposals.ListMine(ctx, actor, page)
	if err != nil {
		return nil, err
	}

	tenderIDs := make([]uint, 0, len(proposals))
	seen := map[uint]bool{}
	for i := range proposals {
		if !seen[proposals[i].TenderID] {
			seen[proposals[i].TenderID] = true
			tenderIDs = append(tenderIDs, proposals[i].TenderID)
		}
	}

	tenders := map[uint]*TenderDetail{}
	if len(tenderIDs) > 0 {
		var rows []models.Tender
		if err := s.DB.WithContext(ctx).Where("id IN ?", tenderIDs).Find(&rows).Error; err != nil {
			return nil, apperr.Internal("load parent tenders", err)
		}
		companyIDs := make([]uint, 0, len(rows))
		seenCompany := map[uint]bool{}
		for i := range rows {
			if !seenCompany[rows[i].CompanyID] {
				seenCompany[rows[i].CompanyID] = true
				companyIDs = append(companyIDs, rows[i].CompanyID)
			}
		}
		profiles := s.Tenders.Dir.Profiles(ctx, companyIDs)
		for i := range rows {
			tenders[rows[i].ID] = &TenderDetail{Tender: rows[i], Company: profiles[rows[i].CompanyID]}
		}
	}

	out := make([]AppliedProposal, 0, len(proposals))
	for i := range proposals {
		entry := AppliedProposal{Proposal: proposals[i]}
		if td, ok := tenders[proposals[i].TenderID]; ok {
			entry.Tender = td
			cmp := models.ComparePrices(proposals[i].ProposedPrice, td.TotalPrice)
			entry.Comparison = &cmp
		}
		out = append(out, entry)
	}
	return out, nil
}
