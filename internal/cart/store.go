package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/fastfood-backend.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store simpan keranjang di redis, satu key per user.
type Store struct {
	RDB *redis.Client
	Log *zap.Logger
}

// Get: (nil, nil) kalau keranjang kosong / belum ada.
func (st *Store) Get(ctx context.Context, userID int64) (*Snapshot, error) {
	key := fmt.Sprintf(redisx.KeyCart, userID)
	data, err := st.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		st.Log.Error("cart get", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		st.Log.Error("cart decode", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &snap, nil
}

func (st *Store) Set(ctx context.Context, userID int64, snap *Snapshot) error {
	key := fmt.Sprintf(redisx.KeyCart, userID)
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := st.RDB.Set(ctx, key, b, redisx.TTLCart).Err(); err != nil {
		st.Log.Error("cart set", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (st *Store) Delete(ctx context.Context, userID int64) error {
	key := fmt.Sprintf(redisx.KeyCart, userID)
	if err := st.RDB.Del(ctx, key).Err(); err != nil {
		st.Log.Error("cart delete", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}
