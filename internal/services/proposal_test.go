package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizlink/marketplace/internal/apperr"
)

func TestCreateProposalRequiresLiveTender(t *testing.T) {
	gdb, tenders, proposals, _ := newServices(t)
	ctx := context.Background()
	owner := adminOf(t, gdb, seedCompany(t, gdb, "owner", true))
	bidder := adminOf(t, gdb, seedCompany(t, gdb, "bidder", true))

	tender, err := tenders.Create(ctx, owner, validTenderInput())
	require.NoError(t, err)

	proposal, err := proposals.Create(ctx, bidder, tender.ID, "800")
	require.NoError(t, err)
	assert.Equal(t, bidder.CompanyID, proposal.CompanyID)
	assert.Equal(t, tender.ID, proposal.TenderID)

	// absent tender
	_, err = proposals.Create(ctx, bidder, 99999, "800")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// tombstoned tender rejects new bids
	require.NoError(t, tenders.Delete(ctx, owner, tender.ID))
	_, err = proposals.Create(ctx, bidder, tender.ID, "700")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// malformed price
	tender2, err := tenders.Create(ctx, owner, validTenderInput())
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidder, tender2.ID, "12.75")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// multiple proposals from the same company are allowed
	_, err = proposals.Create(ctx, bidder, tender2.ID, "900")
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidder, tender2.ID, "850")
	require.NoError(t, err)
}

func TestProposalMutationIsCompanyScoped(t *testing.T) {
	gdb, tenders, proposals, _ := newServices(t)
	ctx := context.Background()
	owner := adminOf(t, gdb, seedCompany(t, gdb, "owner", true))
	bidderX := adminOf(t, gdb, seedCompany(t, gdb, "bidder-x", true))
	bidderY := adminOf(t, gdb, seedCompany(t, gdb, "bidder-y", true))

	tender, err := tenders.Create(ctx, owner, validTenderInput())
	require.NoError(t, err)
	proposal, err := proposals.Create(ctx, bidderX, tender.ID, "800")
	require.NoError(t, err)

	// foreign admin cannot edit or delete
	_, err = proposals.UpdatePrice(ctx, bidderY, proposal.ID, "750")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	err = proposals.Delete(ctx, bidderY, proposal.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// owner company's admin can
	updated, err := proposals.UpdatePrice(ctx, bidderX, proposal.ID, "750")
	require.NoError(t, err)
	assert.Equal(t, "750", updated.ProposedPrice.String())

	require.NoError(t, proposals.Delete(ctx, bidderX, proposal.ID))
	err = proposals.Delete(ctx, bidderX, proposal.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListMineIsScopedToCompany(t *testing.T) {
	gdb, tenders, proposals, _ := newServices(t)
	ctx := context.Background()
	owner := adminOf(t, gdb, seedCompany(t, gdb, "owner", true))
	bidderX := adminOf(t, gdb, seedCompany(t, gdb, "bidder-x", true))
	bidderY := adminOf(t, gdb, seedCompany(t, gdb, "bidder-y", true))

	tender, err := tenders.Create(ctx, owner, validTenderInput())
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidderX, tender.ID, "800")
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidderY, tender.ID, "900")
	require.NoError(t, err)

	mine, err := proposals.ListMine(ctx, bidderX, Page{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, bidderX.CompanyID, mine[0].CompanyID)
}

func TestListForTenderRestrictedToOwningCompany(t *testing.T) {
	gdb, tenders, proposals, _ := newServices(t)
	ctx := context.Background()
	ownerCompany := seedCompany(t, gdb, "owner", true)
	owner := adminOf(t, gdb, ownerCompany)
	bidder := adminOf(t, gdb, seedCompany(t, gdb, "bidder", true))
	outsider := adminOf(t, gdb, seedCompany(t, gdb, "outsider", true))

	tender, err := tenders.Create(ctx, owner, validTenderInput()) // budget 1000
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidder, tender.ID, "800")
	require.NoError(t, err)

	// only the tender's owning company may enumerate bids
	_, err = proposals.ListForTender(ctx, outsider, tender.ID, CompanyFilter{}, Page{})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	details, err := proposals.ListForTender(ctx, owner, tender.ID, CompanyFilter{}, Page{})
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Company)
	assert.Equal(t, "bidder", details[0].Company.Name)
	assert.True(t, details[0].Comparison.Percentage.Equal(decimal.NewFromInt(80)))
	assert.True(t, details[0].Comparison.IsCostEffective)

	// bidding-company predicate filter
	details, err = proposals.ListForTender(ctx, owner, tender.ID, CompanyFilter{Name: "nobody"}, Page{})
	require.NoError(t, err)
	assert.Empty(t, details)
}
