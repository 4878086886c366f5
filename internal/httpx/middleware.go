package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/fastfood-backend.git/internal/auth"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
)

type ctxKey int

const userKey ctxKey = iota

// TokenAuthenticator: validasi bearer token -> user.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*users.User, error)
}

// RequireAuth narik bearer token, validasi, dan taruh user di context.
func RequireAuth(a TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				writeErr(w, auth.ErrInvalidCredentials)
				return
			}
			u, err := a.Authenticate(r.Context(), token)
			if err != nil {
				writeErr(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

// CurrentUser ambil user hasil RequireAuth; nil kalau route gak diproteksi.
func CurrentUser(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}
