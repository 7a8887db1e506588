package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/shareeghor/app/internal/domain/cart"
	domcheckout "example.com/shareeghor/app/internal/domain/checkout"
	domorder "example.com/shareeghor/app/internal/domain/order"
	domproduct "example.com/shareeghor/app/internal/domain/product"
	domsession "example.com/shareeghor/app/internal/domain/session"
	"example.com/shareeghor/app/internal/infra/logger"
	cartuc "example.com/shareeghor/app/internal/usecase/cart"
	checkoutuc "example.com/shareeghor/app/internal/usecase/checkout"
	productuc "example.com/shareeghor/app/internal/usecase/product"
	sessionuc "example.com/shareeghor/app/internal/usecase/session"
)

// RequestMetrics receives one observation per served request.
type RequestMetrics interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

type API struct {
	productSvc     *productuc.Service
	cartSvc        *cartuc.Service
	checkoutSvc    *checkoutuc.Service
	sessionSvc     *sessionuc.Service
	log            *logger.Logger
	requestMetrics RequestMetrics
	metricsHandler http.Handler
	storageCheck   func(ctx context.Context) error
	validator      *validator.Validate
}

type Dependencies struct {
	ProductService  *productuc.Service
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
	SessionService  *sessionuc.Service
	Logger          *logger.Logger
	// RequestMetrics, MetricsHandler and StorageCheck are optional.
	RequestMetrics RequestMetrics
	MetricsHandler http.Handler
	StorageCheck   func(ctx context.Context) error
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &API{
		productSvc:     deps.ProductService,
		cartSvc:        deps.CartService,
		checkoutSvc:    deps.CheckoutService,
		sessionSvc:     deps.SessionService,
		log:            log,
		requestMetrics: deps.RequestMetrics,
		metricsHandler: deps.MetricsHandler,
		storageCheck:   deps.StorageCheck,
		validator:      validate,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/storage", a.handleStorageHealth)
	if a.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", a.metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", a.handleStartSession)

		r.Get("/products", a.handleListProducts)
		r.Get("/products/featured", a.handleFeaturedProducts)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Get("/products/{id}/related", a.handleRelatedProducts)
		r.Get("/categories", a.handleListCategories)
		r.Get("/cities", a.handleListCities)
		r.Get("/delivery-charge", a.handleDeliveryCharge)

		r.Group(func(sr chi.Router) {
			sr.Use(a.sessionMiddleware)

			sr.Route("/cart", func(cr chi.Router) {
				cr.Get("/", a.handleGetCart)
				cr.Delete("/", a.handleClearCart)
				cr.Post("/toggle", a.handleToggleCart)
				cr.Post("/items", a.handleAddCartItem)
				cr.Patch("/items", a.handleUpdateCartItem)
				cr.Delete("/items", a.handleRemoveCartItem)
			})

			sr.Route("/checkout", func(cr chi.Router) {
				cr.Get("/quote", a.handleCheckoutQuote)
				cr.Post("/shipping", a.handleValidateShipping)
				cr.Post("/payment", a.handleValidatePayment)
				cr.Post("/", a.handlePlaceOrder)
			})

			sr.Get("/orders/last", a.handleLastOrder)
		})
	})

	return r
}

func (a *API) handleStorageHealth(w http.ResponseWriter, r *http.Request) {
	if a.storageCheck == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.storageCheck(ctx); err != nil {
		a.log.Error(ctx, "health.storage_failed", err)
		respondError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"description":     p.Description,
		"price":           p.Price,
		"originalPrice":   p.OriginalPrice,
		"formattedPrice":  domcheckout.FormatPrice(p.Price),
		"discountPercent": p.DiscountPercent(),
		"category":        p.Category,
		"sizes":           p.Sizes,
		"colors":          p.Colors,
		"inStock":         p.InStock,
		"rating":          p.Rating,
		"reviews":         p.Reviews,
		"image":           p.Image,
	}
}

func mapProducts(products []*domproduct.Product) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return resp
}

func mapCart(view cartuc.View) map[string]any {
	return map[string]any{
		"items":          view.Lines,
		"total":          view.Total,
		"formattedTotal": domcheckout.FormatPrice(view.Total),
		"itemCount":      view.ItemCount,
		"isOpen":         view.Open,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	var verr *domcheckout.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Details: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domorder.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrInvalidFilter):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domcart.ErrMissingSession),
		errors.Is(err, domsession.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
	case errors.Is(err, domproduct.ErrOutOfStock),
		errors.Is(err, domcart.ErrInvalidVariant),
		errors.Is(err, domorder.ErrEmptyOrderItems),
		errors.Is(err, domorder.ErrInvalidPayment),
		errors.Is(err, domorder.ErrCheckoutValidation):
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
