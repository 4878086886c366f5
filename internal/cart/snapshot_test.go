package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddItem_Totals(t *testing.T) {
	s := NewSnapshot(1)
	s.AddItem(10, "Burger", dec("5.50"), 2)
	s.AddItem(11, "Fries", dec("2.25"), 3)

	require.Len(t, s.Items, 2)
	assert.True(t, s.Items[0].TotalPrice.Equal(dec("11.00")), "got %s", s.Items[0].TotalPrice)
	assert.True(t, s.Items[1].TotalPrice.Equal(dec("6.75")), "got %s", s.Items[1].TotalPrice)
	assert.True(t, s.TotalAmount.Equal(dec("17.75")), "got %s", s.TotalAmount)
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := NewSnapshot(1)
	s.AddItem(10, "Burger", dec("5.50"), 1)
	// harga unit berubah di katalog; line di-refresh
	s.AddItem(10, "Burger", dec("6.00"), 2)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.True(t, s.Items[0].TotalPrice.Equal(dec("18.00")), "got %s", s.Items[0].TotalPrice)
	assert.True(t, s.TotalAmount.Equal(dec("18.00")))
}

func TestRemoveItem(t *testing.T) {
	s := NewSnapshot(1)
	s.AddItem(10, "Burger", dec("5.50"), 2)
	s.AddItem(11, "Fries", dec("2.25"), 1)

	assert.True(t, s.RemoveItem(10))
	require.Len(t, s.Items, 1)
	assert.True(t, s.TotalAmount.Equal(dec("2.25")))

	assert.False(t, s.RemoveItem(99))

	assert.True(t, s.RemoveItem(11))
	assert.True(t, s.Empty())
	assert.True(t, s.TotalAmount.Equal(decimal.Zero))
}

func TestEmpty(t *testing.T) {
	var nilSnap *Snapshot
	assert.True(t, nilSnap.Empty())
	assert.True(t, NewSnapshot(1).Empty())
}

func TestTotals_NoFloatDrift(t *testing.T) {
	// 0.1 sepuluh kali harus persis 1.00, bukan 0.9999...
	s := NewSnapshot(1)
	s.AddItem(10, "Gum", dec("0.10"), 10)
	assert.True(t, s.TotalAmount.Equal(dec("1.00")), "got %s", s.TotalAmount)
}
