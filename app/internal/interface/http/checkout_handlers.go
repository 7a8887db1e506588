package http

import (
	"errors"
	"net/http"

	domorder "example.com/shareeghor/app/internal/domain/order"
	checkoutuc "example.com/shareeghor/app/internal/usecase/checkout"
)

type shippingRequest struct {
	FullName   string `json:"fullName" validate:"max=120"`
	Email      string `json:"email" validate:"max=254"`
	Phone      string `json:"phone" validate:"max=32"`
	Address    string `json:"address" validate:"max=500"`
	City       string `json:"city" validate:"max=64"`
	PostalCode string `json:"postalCode" validate:"max=16"`
}

func (s shippingRequest) toDomain() domorder.ShippingInfo {
	return domorder.ShippingInfo{
		FullName:   s.FullName,
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
	}
}

type cardRequest struct {
	Number string `json:"cardNumber" validate:"max=32"`
	Name   string `json:"cardName" validate:"max=120"`
	Expiry string `json:"expiryDate" validate:"max=7"`
	CVV    string `json:"cvv" validate:"max=4"`
}

func (c cardRequest) toDomain() domorder.CardDetails {
	return domorder.CardDetails{Number: c.Number, Name: c.Name, Expiry: c.Expiry, CVV: c.CVV}
}

type paymentRequest struct {
	PaymentMethod string      `json:"paymentMethod" validate:"required"`
	Card          cardRequest `json:"card"`
}

type placeOrderRequest struct {
	Shipping      shippingRequest `json:"shippingInfo"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Card          cardRequest     `json:"card"`
}

var errMissingCity = errors.New("city is required")

func (a *API) handleCheckoutQuote(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		respondError(w, http.StatusBadRequest, errMissingCity)
		return
	}

	summary, err := a.checkoutSvc.Quote(r.Context(), getSessionID(r.Context()), city)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleValidateShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.checkoutSvc.ValidateShipping(req.toDomain()); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleValidatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.checkoutSvc.ValidatePayment(domorder.PaymentMethod(req.PaymentMethod), req.Card.toDomain()); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	order, err := a.checkoutSvc.PlaceOrder(r.Context(), getSessionID(r.Context()), checkoutuc.PlaceOrderRequest{
		Shipping:      req.Shipping.toDomain(),
		PaymentMethod: domorder.PaymentMethod(req.PaymentMethod),
		Card:          req.Card.toDomain(),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// handleLastOrder serves the confirmation page data. Without a saved order
// the client is sent to the home view's featured products.
func (a *API) handleLastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.checkoutSvc.LastOrder(r.Context(), getSessionID(r.Context()))
	if errors.Is(err, domorder.ErrOrderNotFound) {
		http.Redirect(w, r, "/api/v1/products/featured", http.StatusSeeOther)
		return
	}
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
