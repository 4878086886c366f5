package orders

import (
	"context"
	"sync"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	kafkax "github.com/ariefcatur/fastfood-backend.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Store interface {
	ConfirmOrderTx(ctx context.Context, userID int64, snap *cart.Snapshot) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	GetByID(ctx context.Context, orderID, userID int64) (*Order, error)
}

type CartStore interface {
	Get(ctx context.Context, userID int64) (*cart.Snapshot, error)
	Delete(ctx context.Context, userID int64) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store       Store
	Cart        CartStore
	Producer    Publisher // boleh nil (notifikasi mati)
	ServiceName string
	Log         *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(store Store, cartStore CartStore, producer Publisher, serviceName string, log *zap.Logger) *Service {
	return &Service{
		Store:       store,
		Cart:        cartStore,
		Producer:    producer,
		ServiceName: serviceName,
		Log:         log,
		locks:       map[int64]*sync.Mutex{},
	}
}

// Confirm: baca cart -> ConfirmOrderTx -> hapus cart -> publish event.
// Lock per user dipegang dari baca cart sampai clear cart, supaya dua
// request confirm barengan utk user yang sama gak bikin order dobel.
// Urutan clear-after-success wajib: cart gak boleh hilang kalau order gagal.
func (s *Service) Confirm(ctx context.Context, userID int64) (*Order, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	snap, err := s.Cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	o, err := s.Store.ConfirmOrderTx(ctx, userID, snap)
	if err != nil {
		return nil, err
	}

	if err := s.Cart.Delete(ctx, userID); err != nil {
		// order sudah commit; cart nyangkut cuma bikin confirm berikutnya dobel
		s.Log.Warn("clear cart after confirm", zap.Int64("user_id", userID),
			zap.Int64("order_id", o.ID), zap.Error(err))
	}

	s.publishCreated(o)
	return o, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, orderID, userID int64) (*Order, error) {
	return s.Store.GetByID(ctx, orderID, userID)
}

func (s *Service) lockUser(userID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *Service) publishCreated(o *Order) {
	if s.Producer == nil {
		return
	}
	items := make([]ItemLine, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemLine{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: string(PartitionKey(o.ID)),
		Payload: kafkax.MustMarshal(OrderCreatedPayload{
			OrderID:     o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
			Items:       items,
		}),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
