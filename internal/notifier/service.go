package notifier

import (
	"context"
	"fmt"

	kafkax "github.com/ariefcatur/fastfood-backend.git/internal/kafka"
	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/redisx"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// Service dengerin order.created dan ngabarin user yang punya tg_id.
type Service struct {
	Users       UserGetter
	Redis       *redis.Client
	Telegram    Sender
	ServiceName string
	Log         *zap.Logger
}

// HandleOrderCreated dipasang sebagai handler consumer.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	// dedup via redis (pakai event_id); event ulang gak bikin notif dobel
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if u == nil || u.TgID == nil {
		// user web-only, gak ada yang perlu dinotif
		return nil
	}

	text := fmt.Sprintf("Order #%d created, total %s", p.OrderID, p.TotalAmount.StringFixed(2))
	if err := s.Telegram.Send(ctx, *u.TgID, text); err != nil {
		s.Log.Error("notify order", zap.Int64("order_id", p.OrderID),
			zap.Int64("user_id", p.UserID), zap.Error(err))
		return err
	}
	return nil
}
