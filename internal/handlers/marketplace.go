package handlers

import (
	"net/http"

	"github.com/bizlink/marketplace/internal/httpx"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/services"
)

// MarketplaceHandler serves the three composed read views.
type MarketplaceHandler struct {
	Svc      *services.MarketplaceService
	Resolver *identity.Resolver
}

func NewMarketplaceHandler(svc *services.MarketplaceService, res *identity.Resolver) *MarketplaceHandler {
	return &MarketplaceHandler{Svc: svc, Resolver: res}
}

// AllTenders: GET /api/tenders — public lens.
func (h *MarketplaceHandler) AllTenders(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	filter, err := parseTenderFilter(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	items, err := h.Svc.AllTenders(r.Context(), filter, page)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  page.Normalize().Limit,
		"offset": page.Normalize().Offset,
	})
}

// MyTenders: GET /api/tenders/my — caller's company lens with mutate
// affordances.
func (h *MarketplaceHandler) MyTenders(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	filter, err := parseTenderFilter(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	items, err := h.Svc.MyTenders(r.Context(), actor, filter, page)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  page.Normalize().Limit,
		"offset": page.Normalize().Offset,
	})
}

// MyProposals: GET /api/proposals/my — proposals enriched with parent
// tenders and price comparisons.
func (h *MarketplaceHandler) MyProposals(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	items, err := h.Svc.MyProposals(r.Context(), actor, page)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  page.Normalize().Limit,
		"offset": page.Normalize().Offset,
	})
}
