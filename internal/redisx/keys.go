package redisx

import "time"

const (
	// Keranjang user: cart:{user_id} -> JSON cart.Snapshot
	KeyCart = "cart:%d"

	// Cache list order user: orders:user:{user_id} -> JSON []Order
	KeyOrdersList = "orders:user:%d"

	// Cache detail order: order:{order_id}:{user_id} -> JSON Order
	KeyOrderDetail = "order:%d:%d"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCart        = 7 * 24 * time.Hour
	TTLOrdersList  = 20 * time.Second
	TTLOrderDetail = 60 * time.Second
	TTLDedup       = 48 * time.Hour
)
