// Package server wires the marketplace routes into a single http.Handler.
package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/bizlink/marketplace/internal/auth"
	"github.com/bizlink/marketplace/internal/directory"
	"github.com/bizlink/marketplace/internal/handlers"
	"github.com/bizlink/marketplace/internal/httpx"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/middleware"
	"github.com/bizlink/marketplace/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	dir := directory.New(db)
	resolver := identity.NewResolver(db)
	tenderSvc := services.NewTenderService(db, dir)
	proposalSvc := services.NewProposalService(db, dir)
	marketSvc := services.NewMarketplaceService(db, tenderSvc, proposalSvc)

	th := handlers.NewTenderHandler(tenderSvc, resolver)
	ph := handlers.NewProposalHandler(proposalSvc, resolver)
	mh := handlers.NewMarketplaceHandler(marketSvc, resolver)

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check; detailed errors stay out of the body.
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Tender registry. "my" must register before "{id}" would otherwise
	// swallow it; ServeMux prefers the literal segment either way.
	mux.HandleFunc("GET /api/tenders", mh.AllTenders)
	mux.HandleFunc("POST /api/tenders", th.Create)
	mux.HandleFunc("GET /api/tenders/my", mh.MyTenders)
	mux.HandleFunc("GET /api/tenders/{id}", th.Get)
	mux.HandleFunc("PATCH /api/tenders/{id}", th.Update)
	mux.HandleFunc("DELETE /api/tenders/{id}", th.Delete)
	mux.HandleFunc("GET /api/tenders/{id}/proposals", ph.ListForTender)

	// Proposal ledger.
	mux.HandleFunc("POST /api/proposals", ph.Create)
	mux.HandleFunc("GET /api/proposals/my", mh.MyProposals)
	mux.HandleFunc("PATCH /api/proposals/{id}", ph.Update)
	mux.HandleFunc("DELETE /api/proposals/{id}", ph.Delete)

	return middleware.RequestID(middleware.Recover(middleware.Logging(auth.Middleware(mux))))
}
