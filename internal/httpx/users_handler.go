package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/ariefcatur/fastfood-backend.git/internal/auth"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
	"github.com/go-chi/chi/v5"
)

type UsersHandler struct {
	Repo   *users.Repo
	Tokens *auth.TokenService
	Auth   *auth.Authenticator
}

type registerWebReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerTgReq struct {
	Email string `json:"email"`
	TgID  string `json:"tg_id"`
}

type tokenReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

func (h *UsersHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Post("/users/register", h.registerWeb)
	r.Post("/users/register/tg", h.registerTg)
	r.Post("/users/token", h.token)
	r.Post("/users/refresh", h.refresh)
	r.Group(func(r chi.Router) {
		r.Use(authmw)
		r.Get("/users/me", h.me)
	})
}

func (h *UsersHandler) registerWeb(w http.ResponseWriter, r *http.Request) {
	var req registerWebReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "missing fields"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.Repo.CreateWeb(r.Context(), req.Email, hash)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) registerTg(w http.ResponseWriter, r *http.Request) {
	var req registerTgReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Email == "" || req.TgID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "missing fields"})
		return
	}

	u, err := h.Repo.CreateTg(r.Context(), req.Email, req.TgID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// token: login web, return access + refresh (dua-duanya signed pakai
// secret web; issuer bot mint token sendiri di luar proses ini).
func (h *UsersHandler) token(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	u, err := h.Auth.AuthenticatePassword(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	access, err := h.Tokens.IssueAccessToken(email, "")
	if err != nil {
		writeErr(w, err)
		return
	}
	refresh, err := h.Tokens.IssueRefreshToken(email, "")
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"})
}

// refresh: refresh token valid -> access token baru dengan claim yang sama.
func (h *UsersHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}

	claim, err := h.Tokens.Verify(req.RefreshToken)
	if err != nil {
		writeErr(w, err)
		return
	}
	access, err := h.Tokens.IssueAccessToken(claim.Email, claim.TgID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{AccessToken: access, TokenType: "bearer"})
}

func (h *UsersHandler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CurrentUser(r.Context()))
}
