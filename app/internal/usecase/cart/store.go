package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	domcart "example.com/shareeghor/app/internal/domain/cart"
	domkv "example.com/shareeghor/app/internal/domain/kv"
	domproduct "example.com/shareeghor/app/internal/domain/product"
)

type Logger interface {
	Warn(ctx context.Context, msg string, err error)
}

type Metrics interface {
	CartMutation(op string)
	StorageFailure(op string)
}

type nopLogger struct{}

func (nopLogger) Warn(context.Context, string, error) {}

type nopMetrics struct{}

func (nopMetrics) CartMutation(string)   {}
func (nopMetrics) StorageFailure(string) {}

// View is a consistent read of a cart.
type View struct {
	Lines     []domcart.Line `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int64          `json:"itemCount"`
	Open      bool           `json:"isOpen"`
}

// Store owns one cart. Every mutation is written through to the key-value
// store under kv.KeyCart; storage failures are logged and the in-memory
// cart stays authoritative.
type Store struct {
	mu      sync.Mutex
	cart    *domcart.Cart
	kv      domkv.Store
	log     Logger
	metrics Metrics
}

type StoreOption func(*Store)

func WithLogger(l Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m Metrics) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewStore reads the saved cart once. A missing or unreadable entry starts
// an empty cart.
func NewStore(ctx context.Context, kv domkv.Store, opts ...StoreOption) *Store {
	s := &Store{kv: kv, log: nopLogger{}, metrics: nopMetrics{}}
	for _, opt := range opts {
		opt(s)
	}
	s.cart = domcart.New(s.load(ctx))
	return s
}

func (s *Store) load(ctx context.Context) []domcart.Line {
	raw, err := s.kv.Get(ctx, domkv.KeyCart)
	if err != nil {
		if !errors.Is(err, domkv.ErrNotFound) {
			s.metrics.StorageFailure("get")
			s.log.Warn(ctx, "cart.load_failed", err)
		}
		return nil
	}

	var lines []domcart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.metrics.StorageFailure("decode")
		s.log.Warn(ctx, "cart.decode_failed", err)
		return nil
	}
	return lines
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, op string) {
	s.metrics.CartMutation(op)

	raw, err := json.Marshal(s.cart.Lines)
	if err != nil {
		s.metrics.StorageFailure("encode")
		s.log.Warn(ctx, "cart.encode_failed", err)
		return
	}
	if err := s.kv.Set(ctx, domkv.KeyCart, raw); err != nil {
		s.metrics.StorageFailure("set")
		s.log.Warn(ctx, "cart.persist_failed", err)
	}
}

func (s *Store) AddItem(ctx context.Context, p domproduct.Product, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(p, size, color)
	s.persist(ctx, "add")
}

func (s *Store) RemoveItem(ctx context.Context, productID int64, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(domcart.Key{ProductID: productID, Size: size, Color: color})
	s.persist(ctx, "remove")
}

func (s *Store) UpdateQuantity(ctx context.Context, productID int64, size, color string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := "update"
	if quantity < 1 {
		op = "remove"
	}
	s.cart.UpdateQuantity(domcart.Key{ProductID: productID, Size: size, Color: color}, quantity)
	s.persist(ctx, op)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.persist(ctx, "clear")
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) ItemCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Store) Lines() []domcart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Lines:     s.cart.Snapshot(),
		Total:     s.cart.Total(),
		ItemCount: s.cart.ItemCount(),
		Open:      s.cart.Open,
	}
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Open = open
}

func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Open = !s.cart.Open
	return s.cart.Open
}

// restoreOpen reads the flag written by saveOpen. Cart mutations never touch
// it, so the saved line slice keeps its original shape.
func (s *Store) restoreOpen(ctx context.Context) {
	raw, err := s.kv.Get(ctx, domkv.KeyCartOpen)
	if err != nil {
		if !errors.Is(err, domkv.ErrNotFound) {
			s.metrics.StorageFailure("get")
			s.log.Warn(ctx, "cart.load_open_failed", err)
		}
		return
	}
	open, err := strconv.ParseBool(string(raw))
	if err != nil {
		s.log.Warn(ctx, "cart.decode_open_failed", err)
		return
	}
	s.SetOpen(open)
}

func (s *Store) saveOpen(ctx context.Context) {
	s.mu.Lock()
	open := s.cart.Open
	s.mu.Unlock()

	if err := s.kv.Set(ctx, domkv.KeyCartOpen, []byte(strconv.FormatBool(open))); err != nil {
		s.metrics.StorageFailure("set")
		s.log.Warn(ctx, "cart.persist_open_failed", err)
	}
}

// Checkout hands the current lines to place and clears the cart only if
// place succeeds. The store stays locked for the whole call.
func (s *Store) Checkout(ctx context.Context, place func(lines []domcart.Line, total float64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := place(s.cart.Snapshot(), s.cart.Total()); err != nil {
		return err
	}
	s.cart.Clear()
	s.persist(ctx, "clear")
	return nil
}
