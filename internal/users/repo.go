package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrAlreadyExists = errors.New("user already exists")

type Repo struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

// GetByEmail: (nil, nil) kalau gak ada; absence bukan error di layer ini.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, `SELECT id, email, tg_id, hashed_password, created_at FROM users WHERE email=$1`, "email", email)
}

func (r *Repo) GetByTgID(ctx context.Context, tgID string) (*User, error) {
	return r.getBy(ctx, `SELECT id, email, tg_id, hashed_password, created_at FROM users WHERE tg_id=$1`, "tg_id", tgID)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, `SELECT id, email, tg_id, hashed_password, created_at FROM users WHERE id=$1`, "id", id)
}

func (r *Repo) getBy(ctx context.Context, query, field string, arg any) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.TgID, &u.HashedPassword, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.Log.Error("fetch user", zap.String("entity", "User"), zap.String("op", "get"),
			zap.String("by", field), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

// CreateWeb daftarin user web: email + hash password.
func (r *Repo) CreateWeb(ctx context.Context, email, hashedPassword string) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(email, hashed_password)
		VALUES ($1, $2)
		RETURNING id, email, tg_id, hashed_password, created_at
	`, email, hashedPassword).Scan(&u.ID, &u.Email, &u.TgID, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		r.Log.Error("insert user", zap.String("entity", "User"), zap.String("op", "create_web"),
			zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

// CreateTg daftarin user dari bot Telegram: email + tg_id, tanpa password.
func (r *Repo) CreateTg(ctx context.Context, email, tgID string) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(email, tg_id)
		VALUES ($1, $2)
		RETURNING id, email, tg_id, hashed_password, created_at
	`, email, tgID).Scan(&u.ID, &u.Email, &u.TgID, &u.HashedPassword, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		r.Log.Error("insert user", zap.String("entity", "User"), zap.String("op", "create_tg"),
			zap.String("tg_id", tgID), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
