package orders

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSnapshot(userID int64) *cart.Snapshot {
	s := cart.NewSnapshot(userID)
	s.AddItem(10, "Burger", dec("5.50"), 2)
	s.AddItem(11, "Fries", dec("2.25"), 1)
	return s
}

func newTestService(store *mockStore, c *mockCart, pub Publisher) *Service {
	return NewService(store, c, pub, "test-api", zap.NewNop())
}

func TestConfirm_Success(t *testing.T) {
	store := &mockStore{}
	c := newMockCart()
	pub := &mockPublisher{}
	c.snaps[1] = testSnapshot(1)

	svc := newTestService(store, c, pub)
	o, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(dec("13.25")), "got %s", o.TotalAmount)
	assert.Len(t, o.Items, 2)

	// cart dibersihkan setelah sukses
	assert.Equal(t, []int64{1}, c.deletes)
	assert.Nil(t, c.snaps[1])

	// satu event order.created
	require.Equal(t, 1, pub.count())
	var env Envelope
	require.NoError(t, json.Unmarshal(pub.messages[0], &env))
	assert.Equal(t, EventOrderCreated, env.EventType)
	var p OrderCreatedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, o.ID, p.OrderID)
	assert.True(t, p.TotalAmount.Equal(dec("13.25")))
}

func TestConfirm_EmptyCart(t *testing.T) {
	store := &mockStore{}
	c := newMockCart()
	pub := &mockPublisher{}

	svc := newTestService(store, c, pub)
	_, err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// gak ada order, gak ada event, cart gak dihapus
	assert.Empty(t, store.created)
	assert.Zero(t, pub.count())
	assert.Empty(t, c.deletes)
}

func TestConfirm_PersistenceFailureKeepsCart(t *testing.T) {
	store := &mockStore{confirmErr: errors.New("db down")}
	c := newMockCart()
	pub := &mockPublisher{}
	c.snaps[1] = testSnapshot(1)

	svc := newTestService(store, c, pub)
	_, err := svc.Confirm(context.Background(), 1)
	require.Error(t, err)

	// urutan clear-after-success: gagal = cart tetap utuh
	assert.NotNil(t, c.snaps[1])
	assert.Empty(t, c.deletes)
	assert.Zero(t, pub.count())
}

func TestConfirm_NotIdempotent(t *testing.T) {
	// dua confirm berurutan tanpa clear di antaranya = dua order;
	// perilaku ini disengaja, bukan bug
	store := &mockStore{}
	c := newMockCart()
	c.delErr = errors.New("redis down") // clear gagal, cart nyangkut

	c.snaps[1] = testSnapshot(1)
	svc := newTestService(store, c, nil)

	o1, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	o2, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, o1.ID, o2.ID)
	assert.Len(t, store.created, 2)
}

func TestConfirm_SerializedPerUser(t *testing.T) {
	// dua confirm barengan utk user yang sama gak boleh overlap di store
	store := &mockStore{delay: 30 * time.Millisecond}
	c := newMockCart()
	c.delErr = errors.New("keep cart") // biar dua-duanya liat cart non-empty
	c.snaps[1] = testSnapshot(1)

	svc := newTestService(store, c, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Confirm(context.Background(), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), store.maxInFlight, "confirm harus serial per user")
}

func TestConfirm_DifferentUsersNotSerialized(t *testing.T) {
	store := &mockStore{delay: 30 * time.Millisecond}
	c := newMockCart()
	c.snaps[1] = testSnapshot(1)
	c.snaps[2] = testSnapshot(2)

	svc := newTestService(store, c, nil)

	var wg sync.WaitGroup
	for _, uid := range []int64{1, 2} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := svc.Confirm(context.Background(), id)
			assert.NoError(t, err)
		}(uid)
	}
	wg.Wait()

	assert.Len(t, store.created, 2)
}
