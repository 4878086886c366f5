package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/fastfood-backend.git/internal/auth"
	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr translate error domain ke status code. Cuma layer ini yang
// boleh mapping; di bawah error dipropagate apa adanya.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	case errors.Is(err, orders.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "No products in cart"})
	case errors.Is(err, orders.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	case errors.Is(err, users.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "user already exists"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}
