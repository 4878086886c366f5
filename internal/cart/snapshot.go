package cart

import "github.com/shopspring/decimal"

type Item struct {
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Snapshot adalah isi keranjang user di satu titik waktu.
// TotalAmount selalu diturunkan dari jumlah total_price per item.
type Snapshot struct {
	UserID      int64           `json:"user_id"`
	Items       []Item          `json:"cart_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewSnapshot(userID int64) *Snapshot {
	return &Snapshot{UserID: userID, TotalAmount: decimal.Zero}
}

func (s *Snapshot) Empty() bool { return s == nil || len(s.Items) == 0 }

// AddItem nambahin qty ke item yang sudah ada (harga unit di-refresh dari
// katalog) atau append item baru. Total line & cart dihitung ulang.
func (s *Snapshot) AddItem(productID int64, name string, price decimal.Decimal, qty int) {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Name = name
			s.Items[i].Price = price
			s.Items[i].Quantity += qty
			s.Items[i].TotalPrice = price.Mul(decimal.NewFromInt(int64(s.Items[i].Quantity)))
			s.recalc()
			return
		}
	}
	s.Items = append(s.Items, Item{
		ProductID:  productID,
		Name:       name,
		Price:      price,
		Quantity:   qty,
		TotalPrice: price.Mul(decimal.NewFromInt(int64(qty))),
	})
	s.recalc()
}

// RemoveItem buang satu product dari keranjang. Return false kalau gak ada.
func (s *Snapshot) RemoveItem(productID int64) bool {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.recalc()
			return true
		}
	}
	return false
}

func (s *Snapshot) recalc() {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.TotalPrice)
	}
	s.TotalAmount = total
}
