package handlers

import (
	"net/http"
	"strconv"

	"github.com/bizlink/marketplace/internal/apperr"
	"github.com/bizlink/marketplace/internal/auth"
	"github.com/bizlink/marketplace/internal/identity"
	"github.com/bizlink/marketplace/internal/services"
	"github.com/bizlink/marketplace/internal/validation"
)

// maxBodyBytes caps request bodies; marketplace payloads are small.
const maxBodyBytes = 1 << 20

// resolveActor turns the verified token on the request into a
// company-scoped actor. One resolution per request; handlers pass the
// actor down explicitly.
func resolveActor(r *http.Request, res *identity.Resolver) (identity.Actor, error) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return identity.Actor{}, apperr.E(apperr.KindUnauthorized, "missing or invalid credential")
	}
	return res.Resolve(r.Context(), uid)
}

// pathID parses the {id} segment of the route.
func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(validation.Violations{"id": "invalid_value"})
	}
	return uint(id), nil
}

// parsePage reads limit/offset, defaulting to limit=10, offset=0.
// Non-integer or negative values are validation errors.
func parsePage(r *http.Request) (services.Page, error) {
	page := services.Page{}
	v := validation.Violations{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			v["limit"] = "must_be_nonnegative_integer"
		} else {
			page.Limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			v["offset"] = "must_be_nonnegative_integer"
		} else {
			page.Offset = n
		}
	}
	if !v.Empty() {
		return page, apperr.Validation(v)
	}
	return page, nil
}

// parseCompanyFilter reads the nested company predicates shared by tender
// and proposal listings.
func parseCompanyFilter(r *http.Request) (services.CompanyFilter, error) {
	q := r.URL.Query()
	f := services.CompanyFilter{
		Name:         q.Get("company_name"),
		Type:         q.Get("company_type"),
		EntityType:   q.Get("company_entity_type"),
		BusinessType: q.Get("company_business_type"),
		Sector:       q.Get("company_sector"),
		Industry:     q.Get("company_industry"),
	}
	if raw := q.Get("company_verified"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperr.Validation(validation.Violations{"company_verified": "must_be_boolean"})
		}
		f.Verified = &b
	}
	return f, nil
}

// parseTenderFilter assembles the full ANDed predicate set for tender
// listings. Value-level validation happens in the service.
func parseTenderFilter(r *http.Request) (services.TenderFilter, error) {
	company, err := parseCompanyFilter(r)
	if err != nil {
		return services.TenderFilter{}, err
	}
	q := r.URL.Query()
	return services.TenderFilter{
		Keyword:         q.Get("keyword"),
		PricingCategory: q.Get("pricing_category"),
		PriceMin:        q.Get("price_min"),
		PriceMax:        q.Get("price_max"),
		Location:        q.Get("location"),
		Company:         company,
	}, nil
}
