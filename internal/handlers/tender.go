package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bizlink/marketplace/internal/httpx"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/services"
)

// TenderHandler exposes the tender registry over JSON.
type TenderHandler struct {
	Svc      *services.TenderService
	Resolver *identity.Resolver
}

func NewTenderHandler(svc *services.TenderService, res *identity.Resolver) *TenderHandler {
	return &TenderHandler{Svc: svc, Resolver: res}
}

// Create: POST /api/tenders — company-admin only.
func (h *TenderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.Resolver)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var in services.TenderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	tender, err := h.Svc.Create(r.Context(), actor, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tender)
}

// Get: GET /api/tenders/{id} — public.
func (h *TenderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	detail, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

// Update: PATCH /api/tenders/{id} — owning admin only, partial input.
func (h *TenderHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in services.TenderUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	tender, err := h.Svc.Update(r.Context(), actor, id, in)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tender)
}

// Delete: DELETE /api/tenders/{id} — owning admin only, tombstones.
func (h *TenderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
