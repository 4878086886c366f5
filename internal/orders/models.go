package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order dibuat sekali saat konfirmasi, setelah itu immutable.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"order_items"`
}

// OrderItem snapshot product by value (name & total_price saat beli).
// Sengaja gak ada FK ke products: rename/repricing/hapus product
// tidak boleh ngubah order historis.
type OrderItem struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
