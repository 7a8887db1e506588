package http

import (
	"math"
	"net/http"
	"strconv"

	domcheckout "example.com/shareeghor/app/internal/domain/checkout"
	domproduct "example.com/shareeghor/app/internal/domain/product"
)

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domproduct.ListFilter{
		Category: q.Get("category"),
		Price:    domproduct.PriceRange(q.Get("price")),
		Sort:     domproduct.SortOrder(q.Get("sort")),
		Search:   q.Get("q"),
	}

	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProducts(products), "count": len(products)})
}

func (a *API) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	products, err := a.productSvc.Featured(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProducts(products)})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleRelatedProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	products, err := a.productSvc.Related(r.Context(), id, limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProducts(products)})
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.productSvc.Categories(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": categories})
}

func (a *API) handleListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": domcheckout.Cities()})
}

// handleDeliveryCharge prices delivery for an arbitrary subtotal so the
// product page can show the free-delivery hint without a cart.
func (a *API) handleDeliveryCharge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subtotal, err := strconv.ParseFloat(q.Get("subtotal"), 64)
	if err != nil || math.IsNaN(subtotal) || math.IsInf(subtotal, 0) || subtotal < 0 {
		respondError(w, http.StatusBadRequest, errInvalidSubtotal)
		return
	}
	writeJSON(w, http.StatusOK, domcheckout.Summarize(q.Get("city"), subtotal))
}

func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 0 {
		return 0, errInvalidLimit
	}
	return limit, nil
}
