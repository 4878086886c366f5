package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart     = errors.New("no products in cart")
	ErrOrderNotFound = errors.New("order not found")
)

type Repo struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

// ConfirmOrderTx konversi snapshot keranjang jadi order + items dalam satu
// transaksi: semua row masuk atau tidak sama sekali. Total dihitung exact
// dari jumlah total_price per line (decimal, bukan float).
//
// TIDAK idempotent: dua kali confirm dengan cart yang sama = dua order.
// Pembersihan cart urusan caller, dan cuma setelah return sukses.
func (r *Repo) ConfirmOrderTx(ctx context.Context, userID int64, snap *cart.Snapshot) (*Order, error) {
	if snap.Empty() {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, it := range snap.Items {
		total = total.Add(it.TotalPrice)
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.Log.Error("begin tx", zap.String("entity", "Order"), zap.String("op", "confirm"),
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := Order{UserID: userID, TotalAmount: total}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(user_id, total_amount)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, userID, total).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		r.Log.Error("insert order", zap.String("entity", "Order"), zap.String("op", "confirm"),
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	for _, it := range snap.Items {
		oi := OrderItem{
			OrderID:    o.ID,
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items(order_id, product_id, name, quantity, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, oi.OrderID, oi.ProductID, oi.Name, oi.Quantity, oi.TotalPrice).Scan(&oi.ID)
		if err != nil {
			r.Log.Error("insert order item", zap.String("entity", "OrderItem"), zap.String("op", "confirm"),
				zap.Int64("order_id", o.ID), zap.Int64("product_id", it.ProductID), zap.Error(err))
			return nil, err
		}
		o.Items = append(o.Items, oi)
	}

	if err := tx.Commit(ctx); err != nil {
		r.Log.Error("commit order", zap.String("entity", "Order"), zap.String("op", "confirm"),
			zap.Int64("order_id", o.ID), zap.Error(err))
		return nil, err
	}
	return &o, nil
}

// ListByUser: semua order milik user, terbaru duluan, items ikut.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, created_at, total_amount
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		r.Log.Error("fetch orders", zap.String("entity", "Order"), zap.String("op", "list"),
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []Order
	idx := map[int64]int{}
	var ids []int64
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.TotalAmount); err != nil {
			return nil, err
		}
		idx[o.ID] = len(out)
		ids = append(ids, o.ID)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	irows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, name, quantity, total_price
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		r.Log.Error("fetch order items", zap.String("entity", "OrderItem"), zap.String("op", "list"),
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer irows.Close()

	for irows.Next() {
		var it OrderItem
		if err := irows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.TotalPrice); err != nil {
			return nil, err
		}
		i := idx[it.OrderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, irows.Err()
}

// GetByID scoped ke pemilik: order punya user lain = not found,
// bukan forbidden, biar keberadaan order gak bocor.
func (r *Repo) GetByID(ctx context.Context, orderID, userID int64) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, created_at, total_amount
		FROM orders WHERE id=$1 AND user_id=$2
	`, orderID, userID).Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.TotalAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		r.Log.Error("fetch order", zap.String("entity", "Order"), zap.String("op", "get"),
			zap.Int64("order_id", orderID), zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, name, quantity, total_price
		FROM order_items WHERE order_id=$1
		ORDER BY id
	`, o.ID)
	if err != nil {
		r.Log.Error("fetch order items", zap.String("entity", "OrderItem"), zap.String("op", "get"),
			zap.Int64("order_id", o.ID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.TotalPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}
