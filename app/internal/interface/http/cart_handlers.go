package http

import "net/http"

// cartLineRequest names one cart line. Empty size or color on add means the
// product's first option.
type cartLineRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Size      string `json:"size" validate:"max=32"`
	Color     string `json:"color" validate:"max=32"`
}

type updateCartItemRequest struct {
	cartLineRequest
	// Zero removes the line.
	Quantity *int64 `json:"quantity" validate:"required,gte=0"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	view, err := a.cartSvc.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	view, err := a.cartSvc.AddProduct(r.Context(), getSessionID(r.Context()), req.ProductID, req.Size, req.Color)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCart(view))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	view, err := a.cartSvc.UpdateQuantity(r.Context(), getSessionID(r.Context()), req.ProductID, req.Size, req.Color, *req.Quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	view, err := a.cartSvc.RemoveItem(r.Context(), getSessionID(r.Context()), req.ProductID, req.Size, req.Color)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := a.cartSvc.Clear(r.Context(), getSessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}

func (a *API) handleToggleCart(w http.ResponseWriter, r *http.Request) {
	view, err := a.cartSvc.ToggleOpen(r.Context(), getSessionID(r.Context()))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(view))
}
