package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyTendersForcesCompanyLens(t *testing.T) {
	gdb, tenders, _, market := newServices(t)
	ctx := context.Background()
	companyA := seedCompany(t, gdb, "alpha", true)
	companyB := seedCompany(t, gdb, "beta", true)
	adminA := adminOf(t, gdb, companyA)
	adminB := adminOf(t, gdb, companyB)

	_, err := tenders.Create(ctx, adminA, validTenderInput())
	require.NoError(t, err)
	_, err = tenders.Create(ctx, adminB, validTenderInput())
	require.NoError(t, err)

	mine, err := market.MyTenders(ctx, adminA, TenderFilter{}, Page{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, companyA.ID, mine[0].CompanyID)
	assert.True(t, mine[0].CanEdit)
	assert.True(t, mine[0].CanDelete)

	// a non-admin of the same company sees the rows without affordances
	viewer := userOf(t, gdb, companyA)
	mine, err = market.MyTenders(ctx, viewer, TenderFilter{}, Page{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].CanEdit)
	assert.False(t, mine[0].CanDelete)

	// the public lens ignores any company pin
	all, err := market.AllTenders(ctx, TenderFilter{CompanyID: companyA.ID}, Page{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMyProposalsEnrichment(t *testing.T) {
	gdb, tenders, proposals, market := newServices(t)
	ctx := context.Background()
	owner := adminOf(t, gdb, seedCompany(t, gdb, "owner", true))
	bidder := adminOf(t, gdb, seedCompany(t, gdb, "bidder", true))

	in := validTenderInput()
	in.TotalPrice = "1000"
	tender, err := tenders.Create(ctx, owner, in)
	require.NoError(t, err)

	_, err = proposals.Create(ctx, bidder, tender.ID, "800")
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidder, tender.ID, "1000")
	require.NoError(t, err)

	applied, err := market.MyProposals(ctx, bidder, Page{})
	require.NoError(t, err)
	require.Len(t, applied, 2)

	// 80% and strictly under budget
	require.NotNil(t, applied[0].Tender)
	require.NotNil(t, applied[0].Comparison)
	assert.True(t, applied[0].Comparison.Percentage.Equal(decimal.NewFromInt(80)))
	assert.True(t, applied[0].Comparison.IsCostEffective)

	// exactly the budget is 100% and not cost-effective
	require.NotNil(t, applied[1].Comparison)
	assert.True(t, applied[1].Comparison.Percentage.Equal(decimal.NewFromInt(100)))
	assert.False(t, applied[1].Comparison.IsCostEffective)
}

func TestMyProposalsSurviveTenderTombstone(t *testing.T) {
	gdb, tenders, proposals, market := newServices(t)
	ctx := context.Background()
	owner := adminOf(t, gdb, seedCompany(t, gdb, "owner", true))
	bidder := adminOf(t, gdb, seedCompany(t, gdb, "bidder", true))

	tender, err := tenders.Create(ctx, owner, validTenderInput())
	require.NoError(t, err)
	_, err = proposals.Create(ctx, bidder, tender.ID, "800")
	require.NoError(t, err)

	require.NoError(t, tenders.Delete(ctx, owner, tender.ID))

	// the proposal row remains; tender detail and comparison degrade to nil
	applied, err := market.MyProposals(ctx, bidder, Page{})
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Nil(t, applied[0].Tender)
	assert.Nil(t, applied[0].Comparison)
}
