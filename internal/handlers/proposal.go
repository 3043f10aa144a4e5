package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bizlink/marketplace/internal/httpx"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/services"
)

// ProposalHandler exposes the proposal ledger over JSON.
type ProposalHandler struct {
	Svc      *services.ProposalService
	Resolver *identity.Resolver
}

func NewProposalHandler(svc *services.ProposalService, res *identity.Resolver) *ProposalHandler {
	return &ProposalHandler{Svc: svc, Resolver: res}
}

type createProposalReq struct {
	TenderID      uint   `json:"tender_id"`
	ProposedPrice string `json:"proposed_price"`
}

type updateProposalReq struct {
	ProposedPrice string `json:"proposed_price"`
}

// Create: POST /api/proposals — bidding company's admin.
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req createProposalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	proposal, err := h.Svc.Create(r.Context(), actor, req.TenderID, req.ProposedPrice)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, proposal)
}

// Update: PATCH /api/proposals/{id} — price is the only mutable field.
func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req updateProposalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	proposal, err := h.Svc.UpdatePrice(r.Context(), actor, id, req.ProposedPrice)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, proposal)
}

// Delete: DELETE /api/proposals/{id} — tombstones, company-scoped.
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForTender: GET /api/tenders/{id}/proposals — owning company only.
func (h *ProposalHandler) ListForTender(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	filter, err := parseCompanyFilter(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	details, err := h.Svc.ListForTender(r.Context(), actor, id, filter, page)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  details,
		"limit":  page.Normalize().Limit,
		"offset": page.Normalize().Offset,
	})
}
