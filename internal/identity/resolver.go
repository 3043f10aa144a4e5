// Package identity resolves an authenticated user into the company scope
// every marketplace operation runs under. Resolution happens once per
// request; the resulting Actor is passed explicitly through the call chain
// so services can be exercised without an HTTP layer.
package identity

import (
	"context"
	"errors"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/models"
	"gorm.io/gorm"
)

// Actor is the typed capability a request acts with.
type Actor struct {
	UserID    uint
	CompanyID uint
	IsAdmin   bool
}

// Resolver is the identity-provider boundary: credential in, scoped actor
// out. The DB-backed implementation below is what production wires in.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// Resolve maps a verified user id to its company scope.
// Fails Unauthorized when the user record is gone (a stale token), and
// NotFound when the owning company itself is tombstoned.
func (r *Resolver) Resolve(ctx context.Context, userID uint) (Actor, error) {
	var user models.CompanyUser
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, apperr.E(apperr.KindUnauthorized, "unknown user")
		}
		return Actor{}, apperr.Internal("resolve user", err)
	}
	var company models.Company
	if err := r.DB.WithContext(ctx).Select("id").First(&company, user.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, apperr.E(apperr.KindNotFound, "company not found")
		}
		return Actor{}, apperr.Internal("resolve company", err)
	}
	return Actor{UserID: user.ID, CompanyID: company.ID, IsAdmin: user.IsAdmin}, nil
}

// RequireAdmin narrows an actor to the company-admin tier.
func (a Actor) RequireAdmin() error {
	if !a.IsAdmin {
		return apperr.E(apperr.KindForbidden, "admin capability required")
	}
	return nil
}
