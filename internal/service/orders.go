package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sreeaadya/drycleaners/internal/domain"
	"github.com/sreeaadya/drycleaners/internal/mirror"
	"github.com/sreeaadya/drycleaners/internal/observability"
	"github.com/sreeaadya/drycleaners/internal/pkg/pool"
)

//go:generate mockgen -source=internal/service/orders.go -destination=internal/service/orders_mock_test.go -package=service

// Mirror is the best-effort secondary store. Every error it returns is
// logged and swallowed; mirror failures never fail a request.
type Mirror interface {
	PublishOrder(ctx context.Context, s mirror.OrderSummary) error
	RemoveOrder(ctx context.Context, orderID string) error
	PublishUser(ctx context.Context, uid string, profile mirror.UserProfile) error
	RemoveUser(ctx context.Context, uid string) error
}

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error
}

type CreateOrderRequest struct {
	UserEmail        string
	Service          string
	Quantity         int
	Price            float64
	ExpectedDelivery string
	PickupPerson     string
}

// Orders orchestrates the order lifecycle: persist to the primary store,
// notify the user, keep the mirror aligned.
type Orders struct {
	repo     domain.OrderRepository
	mirror   Mirror
	notifier Notifier
	mailPool *pool.Pool
	logger   *zap.Logger
	metrics  observability.Metrics
	timeout  time.Duration
}

// NewOrders wires the order service. mailPool may be nil, in which case the
// confirmation mail is sent synchronously (its failure is still ignored).
func NewOrders(repo domain.OrderRepository, m Mirror, n Notifier, mailPool *pool.Pool,
	logger *zap.Logger, metrics observability.Metrics, timeout time.Duration) *Orders {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Orders{
		repo:     repo,
		mirror:   m,
		notifier: n,
		mailPool: mailPool,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (s *Orders) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.UserEmail == "" {
		return nil, fmt.Errorf("%w: userEmail is required", domain.ErrValidation)
	}
	if req.Service == "" {
		return nil, fmt.Errorf("%w: service is required", domain.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}

	order := &domain.Order{
		UserEmail:        req.UserEmail,
		Service:          req.Service,
		Quantity:         req.Quantity,
		Price:            req.Price,
		TotalPrice:       float64(req.Quantity) * req.Price,
		Status:           domain.StatusPending,
		ExpectedDelivery: req.ExpectedDelivery,
		PickupPerson:     req.PickupPerson,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("order create failed", zap.String("email", req.UserEmail), zap.Error(err))
		return nil, err
	}
	s.metrics.IncOrderCreated()
	s.logger.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("email", order.UserEmail),
		zap.Float64("total", order.TotalPrice),
	)

	s.dispatchConfirmation(*order)
	s.mirrorOrder(ctx, *order)

	return order, nil
}

func (s *Orders) Update(ctx context.Context, orderID string, upd domain.OrderUpdate) (*domain.Order, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("%w: no updatable fields", domain.ErrValidation)
	}

	order, err := s.repo.Update(ctx, orderID, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("order updated", zap.String("order_id", orderID), zap.String("status", order.Status))

	s.mirrorOrder(ctx, *order)
	return order, nil
}

func (s *Orders) Delete(ctx context.Context, orderID string) error {
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.String("order_id", orderID))

	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.mirror.RemoveOrder(mctx, orderID); err != nil {
		s.metrics.ObserveMirror("remove_order", false)
		s.logger.Warn("mirror remove failed", zap.String("order_id", orderID), zap.Error(err))
	} else {
		s.metrics.ObserveMirror("remove_order", true)
	}
	return nil
}

func (s *Orders) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Orders) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

// dispatchConfirmation sends the mail off the request path. Failures are
// logged and counted, never surfaced.
func (s *Orders) dispatchConfirmation(order domain.Order) {
	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.SendOrderConfirmation(ctx, order.UserEmail, order); err != nil {
			s.metrics.ObserveMail(false)
			s.logger.Warn("confirmation mail failed",
				zap.String("order_id", order.OrderID),
				zap.String("to", order.UserEmail),
				zap.Error(err),
			)
			return
		}
		s.metrics.ObserveMail(true)
	}
	if s.mailPool != nil {
		s.mailPool.Submit(send)
		return
	}
	send()
}

func (s *Orders) mirrorOrder(ctx context.Context, order domain.Order) {
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	summary := mirror.OrderSummary{
		OrderID:          order.OrderID,
		UserEmail:        order.UserEmail,
		Service:          order.Service,
		Quantity:         order.Quantity,
		TotalPrice:       order.TotalPrice,
		Status:           order.Status,
		ExpectedDelivery: order.ExpectedDelivery,
		PickupPerson:     order.PickupPerson,
		UpdatedAt:        time.Now(),
	}
	if err := s.mirror.PublishOrder(mctx, summary); err != nil {
		s.metrics.ObserveMirror("publish_order", false)
		s.logger.Warn("mirror write failed", zap.String("order_id", order.OrderID), zap.Error(err))
		return
	}
	s.metrics.ObserveMirror("publish_order", true)
	s.logger.Debug("order synced to mirror", zap.String("order_id", order.OrderID))
}
