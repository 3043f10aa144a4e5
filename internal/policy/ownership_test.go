package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/models"
)

func TestCheckOwnership(t *testing.T) {
	owner := identity.Actor{UserID: 1, CompanyID: 7, IsAdmin: true}
	foreign := identity.Actor{UserID: 2, CompanyID: 8, IsAdmin: true}
	tender := &models.Tender{CompanyID: 7}

	assert.NoError(t, CheckOwnership(owner, tender))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CheckOwnership(foreign, tender)))
	assert.NoError(t, CheckOwnership(foreign, nil))
}

func TestCheckMutate(t *testing.T) {
	admin := identity.Actor{UserID: 1, CompanyID: 7, IsAdmin: true}
	viewer := identity.Actor{UserID: 3, CompanyID: 7, IsAdmin: false}
	proposal := &models.Proposal{CompanyID: 7}

	assert.NoError(t, CheckMutate(admin, proposal))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CheckMutate(viewer, proposal)))
}
