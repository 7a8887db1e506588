package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domcart "example.com/shareeghor/app/internal/domain/cart"
	domcheckout "example.com/shareeghor/app/internal/domain/checkout"
	domkv "example.com/shareeghor/app/internal/domain/kv"
	domorder "example.com/shareeghor/app/internal/domain/order"
	cartuc "example.com/shareeghor/app/internal/usecase/cart"
)

// CartOpener runs fn on the session's cart while no other call on that
// session can change it.
type CartOpener interface {
	WithCart(ctx context.Context, sessionID string, fn func(st *cartuc.Store) error) error
}

// EventPublisher announces placed orders to the outside world.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domorder.Order) error
}

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *domorder.Order) error
}

type Logger interface {
	Info(ctx context.Context, msg string)
	Warn(ctx context.Context, msg string, err error)
}

type Metrics interface {
	OrderPlaced(paymentMethod string)
	StorageFailure(op string)
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderPlaced(context.Context, *domorder.Order) error { return nil }

type nopMailer struct{}

func (nopMailer) SendOrderConfirmation(context.Context, *domorder.Order) error { return nil }

type nopLogger struct{}

func (nopLogger) Info(context.Context, string)        {}
func (nopLogger) Warn(context.Context, string, error) {}

type nopMetrics struct{}

func (nopMetrics) OrderPlaced(string)    {}
func (nopMetrics) StorageFailure(string) {}

// PlaceOrderRequest is what the last wizard step submits.
type PlaceOrderRequest struct {
	Shipping      domorder.ShippingInfo
	PaymentMethod domorder.PaymentMethod
	Card          domorder.CardDetails
}

type Service struct {
	carts     CartOpener
	kv        domkv.Store
	publisher EventPublisher
	mailer    Mailer
	log       Logger
	metrics   Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithMailer(m Mailer) Option {
	return func(s *Service) {
		if m != nil {
			s.mailer = m
		}
	}
}

func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(carts CartOpener, kv domkv.Store, opts ...Option) *Service {
	s := &Service{
		carts:     carts,
		kv:        kv,
		publisher: nopPublisher{},
		mailer:    nopMailer{},
		log:       nopLogger{},
		metrics:   nopMetrics{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices the session's current cart for delivery to city.
func (s *Service) Quote(ctx context.Context, sessionID, city string) (domcheckout.Summary, error) {
	var summary domcheckout.Summary
	err := s.carts.WithCart(ctx, sessionID, func(st *cartuc.Store) error {
		summary = domcheckout.Summarize(city, st.Total())
		return nil
	})
	return summary, err
}

func (s *Service) ValidateShipping(info domorder.ShippingInfo) error {
	return domcheckout.ValidateShipping(info)
}

func (s *Service) ValidatePayment(method domorder.PaymentMethod, card domorder.CardDetails) error {
	return domcheckout.ValidatePayment(method, card)
}

// PlaceOrder snapshots the cart into an Order, saves it as the session's
// last order and empties the cart. Saving, publishing and mailing are best
// effort; only validation and an empty cart fail the call.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req PlaceOrderRequest) (*domorder.Order, error) {
	if err := domcheckout.ValidateShipping(req.Shipping); err != nil {
		return nil, err
	}
	if err := domcheckout.ValidatePayment(req.PaymentMethod, req.Card); err != nil {
		return nil, err
	}

	var order *domorder.Order
	err := s.carts.WithCart(ctx, sessionID, func(st *cartuc.Store) error {
		return st.Checkout(ctx, func(lines []domcart.Line, subtotal float64) error {
			if len(lines) == 0 {
				return domorder.ErrEmptyOrderItems
			}
			order = s.buildOrder(lines, subtotal, req)
			s.saveLastOrder(ctx, sessionID, order)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrderPlaced(string(order.PaymentMethod))
	s.log.Info(ctx, "checkout.order_placed")

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.log.Warn(ctx, "checkout.publish_failed", err)
	}
	if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
		s.log.Warn(ctx, "checkout.mail_failed", err)
	}

	return order, nil
}

func (s *Service) buildOrder(lines []domcart.Line, subtotal float64, req PlaceOrderRequest) *domorder.Order {
	now := s.now()
	summary := domcheckout.Summarize(req.Shipping.City, subtotal)

	shipping := req.Shipping
	shipping.Phone = domcheckout.FormatPhone(shipping.Phone)

	return &domorder.Order{
		TrackingID:        domcheckout.TrackingID(now),
		EstimatedDelivery: domcheckout.EstimatedDelivery(now),
		Items:             lines,
		Subtotal:          summary.Subtotal,
		DeliveryCharge:    summary.DeliveryCharge,
		Total:             summary.Total,
		ShippingInfo:      shipping,
		PaymentMethod:     req.PaymentMethod,
		OrderDate:         now,
	}
}

func (s *Service) saveLastOrder(ctx context.Context, sessionID string, order *domorder.Order) {
	raw, err := json.Marshal(order)
	if err != nil {
		s.metrics.StorageFailure("encode")
		s.log.Warn(ctx, "checkout.encode_failed", err)
		return
	}
	if err := domkv.SessionKeys(s.kv, sessionID).Set(ctx, domkv.KeyLastOrder, raw); err != nil {
		s.metrics.StorageFailure("set")
		s.log.Warn(ctx, "checkout.save_order_failed", err)
	}
}

// LastOrder returns the order most recently placed in the session.
func (s *Service) LastOrder(ctx context.Context, sessionID string) (*domorder.Order, error) {
	if sessionID == "" {
		return nil, domcart.ErrMissingSession
	}

	raw, err := domkv.SessionKeys(s.kv, sessionID).Get(ctx, domkv.KeyLastOrder)
	if err != nil {
		if errors.Is(err, domkv.ErrNotFound) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, fmt.Errorf("read last order: %w", err)
	}

	var order domorder.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		s.log.Warn(ctx, "checkout.decode_order_failed", err)
		return nil, domorder.ErrOrderNotFound
	}
	return &order, nil
}
