// Package policy holds the company-ownership checks shared by the tender
// registry and the proposal ledger. Ownership sits on the company, not the
// individual user: any admin of the owning company passes.
package policy

import (
	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/identity"
)

// CompanyOwned is implemented by resources that belong to a company.
type CompanyOwned interface {
	GetCompanyID() uint
}

// CheckOwnership verifies the actor's company owns the resource.
// Returns Forbidden otherwise; the boundary renders that the same as
// NotFound so foreign resources cannot be enumerated.
func CheckOwnership(actor identity.Actor, resource CompanyOwned) error {
	if resource == nil {
		// No concrete resource means nothing to own-check; create paths
		// bind the company id themselves.
		return nil
	}
	if resource.GetCompanyID() != actor.CompanyID {
		return apperr.E(apperr.KindForbidden, "resource not owned by caller's company")
	}
	return nil
}

// CheckMutate combines the admin-tier and ownership checks every write
// path performs.
func CheckMutate(actor identity.Actor, resource CompanyOwned) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	return CheckOwnership(actor, resource)
}
