package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	"github.com/ariefcatur/fastfood-backend.git/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Store   *cart.Store
	Catalog *catalog.Repo
}

type addItemReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authmw)
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addItem)
		r.Delete("/cart/items/{product_id}", h.removeItem)
		r.Delete("/cart", h.clearCart)
	})
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	snap, err := h.Store.Get(r.Context(), u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if snap == nil {
		snap = cart.NewSnapshot(u.ID)
	}
	writeJSON(w, http.StatusOK, snap)
}

// addItem resolve nama & harga live dari katalog; total line + cart
// dihitung ulang tiap perubahan.
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.ProductID == 0 || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "missing fields"})
		return
	}

	p, err := h.Catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "product not found"})
		return
	}

	snap, err := h.Store.Get(r.Context(), u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if snap == nil {
		snap = cart.NewSnapshot(u.ID)
	}
	snap.AddItem(p.ID, p.Name, p.Price, req.Quantity)

	if err := h.Store.Set(r.Context(), u.ID, snap); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid product_id"})
		return
	}

	snap, err := h.Store.Get(r.Context(), u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if snap == nil || !snap.RemoveItem(productID) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not in cart"})
		return
	}

	if snap.Empty() {
		if err := h.Store.Delete(r.Context(), u.ID); err != nil {
			writeErr(w, err)
			return
		}
	} else if err := h.Store.Set(r.Context(), u.ID, snap); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if err := h.Store.Delete(r.Context(), u.ID); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
