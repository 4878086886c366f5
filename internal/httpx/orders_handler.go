package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type OrdersHandler struct {
	Svc   *orders.Service
	Redis *redis.Client
}

func (h *OrdersHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authmw)
		r.Post("/orders/confirmation", h.confirm)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
	})
}

func (h *OrdersHandler) confirm(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())

	if _, err := h.Svc.Confirm(r.Context(), u.ID); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Order successfully created"})
}

// listOrders dicache ~20 detik per user; konfirmasi baru boleh muncul telat.
func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	key := fmt.Sprintf(redisx.KeyOrdersList, u.ID)

	if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	os, err := h.Svc.List(r.Context(), u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if os == nil {
		os = []orders.Order{}
	}
	b, _ := json.Marshal(os)
	_ = h.Redis.Set(r.Context(), key, b, redisx.TTLOrdersList).Err()
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}

// getOrder dicache ~60 detik; key include user_id supaya cache gak
// nyebrang pemilik.
func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid id"})
		return
	}

	key := fmt.Sprintf(redisx.KeyOrderDetail, orderID, u.ID)
	if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	o, err := h.Svc.Get(r.Context(), orderID, u.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	b, _ := json.Marshal(o)
	_ = h.Redis.Set(r.Context(), key, b, redisx.TTLOrderDetail).Err()
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}
