package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Proposal is a bid a company submits against another company's tender.
// ProposedPrice follows the same big-integer-as-string contract as
// Tender.TotalPrice.
type Proposal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TenderID uint    `gorm:"index;not null" json:"tender_id"`
	Tender   *Tender `gorm:"foreignKey:TenderID" json:"-"`

	// CompanyID is the bidding company, bound from the acting admin.
	CompanyID uint     `gorm:"index;not null" json:"company_id"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`

	ProposedPrice decimal.Decimal `gorm:"type:varchar(80);not null" json:"proposed_price"`
}

// GetCompanyID implements the policy.CompanyOwned interface.
func (p *Proposal) GetCompanyID() uint {
	return p.CompanyID
}

// PriceComparison relates a proposal's price to its tender's budget.
// It is computed on read, never persisted.
type PriceComparison struct {
	// Percentage is proposedPrice/totalPrice*100 rounded to the nearest
	// whole percent. It stays a decimal end to end: the ratio of two
	// valid prices can itself exceed 64 bits, so narrowing to a machine
	// integer would corrupt it the same way float64 would corrupt the
	// prices.
	Percentage decimal.Decimal `json:"percentage"`
	// IsCostEffective is true when the proposal undercuts the budget
	// strictly. It is derived from the exact comparison, not the rounded
	// percentage, so a bid one unit under budget stays cost-effective.
	IsCostEffective bool `json:"is_cost_effective"`
}

// ComparePrices computes the comparison with exact decimal arithmetic.
// A zero or negative budget yields no meaningful percentage; callers only
// pass validated tender prices, but guard anyway.
func ComparePrices(proposed, total decimal.Decimal) PriceComparison {
	if total.Sign() <= 0 {
		return PriceComparison{Percentage: decimal.Zero, IsCostEffective: false}
	}
	return PriceComparison{
		Percentage:      proposed.Mul(decimal.NewFromInt(100)).DivRound(total, 0),
		IsCostEffective: proposed.Cmp(total) < 0,
	}
}
