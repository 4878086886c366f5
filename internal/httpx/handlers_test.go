package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/auth"
	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuth: token "good" -> user, lainnya error yang dikonfigurasi.
type fakeAuth struct {
	user *users.User
	err  error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*users.User, error) {
	if token == "good" {
		return f.user, nil
	}
	return nil, f.err
}

type fakeOrderStore struct {
	nextID int64
}

func (f *fakeOrderStore) ConfirmOrderTx(_ context.Context, userID int64, snap *cart.Snapshot) (*orders.Order, error) {
	if snap.Empty() {
		return nil, orders.ErrEmptyCart
	}
	f.nextID++
	return &orders.Order{ID: f.nextID, UserID: userID, CreatedAt: time.Now(), TotalAmount: snap.TotalAmount}, nil
}

func (f *fakeOrderStore) ListByUser(context.Context, int64) ([]orders.Order, error) {
	return nil, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, _, _ int64) (*orders.Order, error) {
	return nil, orders.ErrOrderNotFound
}

type fakeCartStore struct {
	snaps map[int64]*cart.Snapshot
}

func (f *fakeCartStore) Get(_ context.Context, userID int64) (*cart.Snapshot, error) {
	return f.snaps[userID], nil
}

func (f *fakeCartStore) Delete(_ context.Context, userID int64) error {
	delete(f.snaps, userID)
	return nil
}

func strptr(s string) *string { return &s }

func testUser() *users.User {
	return &users.User{ID: 1, Email: strptr("user@example.com")}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw := RequireAuth(&fakeAuth{err: auth.ErrInvalidCredentials})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not validate credentials")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	mw := RequireAuth(&fakeAuth{err: auth.ErrTokenExpired})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestRequireAuth_PassesUserToHandler(t *testing.T) {
	u := testUser()
	mw := RequireAuth(&fakeAuth{user: u})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := CurrentUser(r.Context())
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func confirmRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/orders/confirmation", nil)
	req.Header.Set("Authorization", "Bearer good")
	return req
}

func TestConfirm_Created(t *testing.T) {
	snap := cart.NewSnapshot(1)
	snap.AddItem(10, "Burger", decimal.RequireFromString("5.50"), 2)

	svc := orders.NewService(&fakeOrderStore{}, &fakeCartStore{snaps: map[int64]*cart.Snapshot{1: snap}},
		nil, "test-api", zap.NewNop())

	r := NewRouter()
	(&OrdersHandler{Svc: svc}).Register(r, RequireAuth(&fakeAuth{user: testUser()}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, confirmRequest())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order successfully created")
}

func TestConfirm_EmptyCart(t *testing.T) {
	svc := orders.NewService(&fakeOrderStore{}, &fakeCartStore{snaps: map[int64]*cart.Snapshot{}},
		nil, "test-api", zap.NewNop())

	r := NewRouter()
	(&OrdersHandler{Svc: svc}).Register(r, RequireAuth(&fakeAuth{user: testUser()}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, confirmRequest())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No products in cart")
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	tokens := auth.NewTokenService("web-secret", "bot-secret")
	refresh, err := tokens.IssueRefreshToken("user@example.com", "")
	require.NoError(t, err)

	r := NewRouter()
	(&UsersHandler{Tokens: tokens}).Register(r, RequireAuth(&fakeAuth{err: auth.ErrInvalidCredentials}))

	body, _ := json.Marshal(map[string]string{"refresh_token": refresh})
	req := httptest.NewRequest(http.MethodPost, "/users/refresh", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	claim, err := tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claim.Email)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	tokens := auth.NewTokenService("web-secret", "bot-secret")

	r := NewRouter()
	(&UsersHandler{Tokens: tokens}).Register(r, RequireAuth(&fakeAuth{err: auth.ErrInvalidCredentials}))

	body, _ := json.Marshal(map[string]string{"refresh_token": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/users/refresh", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
