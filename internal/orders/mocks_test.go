package orders

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// mockStore implements Store in-memory.
type mockStore struct {
	mu      sync.Mutex
	nextID  int64
	created []*Order

	confirmErr error
	delay      time.Duration

	inFlight    int32
	maxInFlight int32
}

func (m *mockStore) ConfirmOrderTx(_ context.Context, userID int64, snap *cart.Snapshot) (*Order, error) {
	cur := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		max := atomic.LoadInt32(&m.maxInFlight)
		if cur <= max || atomic.CompareAndSwapInt32(&m.maxInFlight, max, cur) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if snap.Empty() {
		return nil, ErrEmptyCart
	}
	if m.confirmErr != nil {
		return nil, m.confirmErr
	}

	total := decimal.Zero
	for _, it := range snap.Items {
		total = total.Add(it.TotalPrice)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	o := &Order{ID: m.nextID, UserID: userID, CreatedAt: time.Now(), TotalAmount: total}
	for _, it := range snap.Items {
		o.Items = append(o.Items, OrderItem{
			OrderID: o.ID, ProductID: it.ProductID, Name: it.Name,
			Quantity: it.Quantity, TotalPrice: it.TotalPrice,
		})
	}
	m.created = append(m.created, o)
	return o, nil
}

func (m *mockStore) ListByUser(_ context.Context, userID int64) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for i := len(m.created) - 1; i >= 0; i-- {
		if m.created[i].UserID == userID {
			out = append(out, *m.created[i])
		}
	}
	return out, nil
}

func (m *mockStore) GetByID(_ context.Context, orderID, userID int64) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.created {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// mockCart implements CartStore; ngerekam urutan delete.
type mockCart struct {
	mu      sync.Mutex
	snaps   map[int64]*cart.Snapshot
	getErr  error
	delErr  error
	deletes []int64
}

func newMockCart() *mockCart {
	return &mockCart{snaps: map[int64]*cart.Snapshot{}}
}

func (m *mockCart) Get(_ context.Context, userID int64) (*cart.Snapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snaps[userID], nil
}

func (m *mockCart) Delete(_ context.Context, userID int64) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, userID)
	m.deletes = append(m.deletes, userID)
	return nil
}

// mockPublisher ngerekam event yang di-publish.
type mockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
}

func (m *mockPublisher) Publish(_, value []byte, _ ...kafkago.Header) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, value)
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
