package mirror

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderSummary is the denormalized slice of an order pushed to the mirror.
// Field names match what real-time consumers already read.
type OrderSummary struct {
	OrderID          string    `json:"orderId"`
	UserEmail        string    `json:"userEmail"`
	Service          string    `json:"service"`
	Quantity         int       `json:"quantity"`
	TotalPrice       float64   `json:"totalPrice"`
	Status           string    `json:"status"`
	ExpectedDelivery string    `json:"expectedDelivery"`
	PickupPerson     string    `json:"pickupPerson"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UserProfile is the mirrored slice of a user profile, keyed by uid.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	JoinedDate string `json:"joinedDate"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Pincode    string `json:"pincode"`
	Landmark   string `json:"landmark"`
}

// Publisher pushes keyed records to the mirror topics. A record overwrites
// the previous one with the same key; a tombstone (nil value) removes it.
type Publisher struct {
	orders  *kafkago.Writer
	users   *kafkago.Writer
	timeout time.Duration
	logger  *zap.Logger
}

func NewPublisher(brokers []string, ordersTopic, usersTopic string, timeout time.Duration, logger *zap.Logger) *Publisher {
	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireOne,
		}
	}
	return &Publisher{
		orders:  newWriter(ordersTopic),
		users:   newWriter(usersTopic),
		timeout: timeout,
		logger:  logger,
	}
}

func (p *Publisher) write(ctx context.Context, w *kafkago.Writer, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Publisher) PublishOrder(ctx context.Context, s OrderSummary) error {
	value, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.write(ctx, p.orders, s.OrderID, value)
}

func (p *Publisher) RemoveOrder(ctx context.Context, orderID string) error {
	return p.write(ctx, p.orders, orderID, nil)
}

func (p *Publisher) PublishUser(ctx context.Context, uid string, profile UserProfile) error {
	value, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return p.write(ctx, p.users, uid, value)
}

func (p *Publisher) RemoveUser(ctx context.Context, uid string) error {
	return p.write(ctx, p.users, uid, nil)
}

func (p *Publisher) Close() error {
	if err := p.orders.Close(); err != nil {
		return err
	}
	return p.users.Close()
}

// Noop stands in when no mirror brokers are configured.
type Noop struct{}

func (Noop) PublishOrder(context.Context, OrderSummary) error       { return nil }
func (Noop) RemoveOrder(context.Context, string) error              { return nil }
func (Noop) PublishUser(context.Context, string, UserProfile) error { return nil }
func (Noop) RemoveUser(context.Context, string) error               { return nil }
