package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Repo struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		r.Log.Error("fetch categories", zap.String("entity", "Category"), zap.String("op", "list"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListProducts: categoryID 0 = semua kategori.
func (r *Repo) ListProducts(ctx context.Context, categoryID int64) ([]Product, error) {
	q := `SELECT id, category_id, name, price FROM products`
	args := []any{}
	if categoryID != 0 {
		q += ` WHERE category_id=$1`
		args = append(args, categoryID)
	}
	q += ` ORDER BY id`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		r.Log.Error("fetch products", zap.String("entity", "Product"), zap.String("op", "list"),
			zap.Int64("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProduct: (nil, nil) kalau gak ada.
func (r *Repo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT id, category_id, name, price FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.Log.Error("fetch product", zap.String("entity", "Product"), zap.String("op", "get"),
			zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}
