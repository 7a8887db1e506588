package cart

import (
	"context"
	"hash/fnv"
	"slices"
	"sync"

	domcart "example.com/shareeghor/app/internal/domain/cart"
	domkv "example.com/shareeghor/app/internal/domain/kv"
	domproduct "example.com/shareeghor/app/internal/domain/product"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
}

// lockStripes bounds the number of session locks regardless of how many
// sessions exist.
const lockStripes = 64

// Service builds a Store per call from the session's key space, so every
// request reads the latest saved cart. Calls on the same session are
// serialized within the process.
type Service struct {
	kv          domkv.Store
	productRepo ProductRepository
	opts        []StoreOption

	locks [lockStripes]sync.Mutex
}

func NewService(kv domkv.Store, productRepo ProductRepository, opts ...StoreOption) *Service {
	return &Service{
		kv:          kv,
		productRepo: productRepo,
		opts:        opts,
	}
}

func (s *Service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Open loads the session's saved cart and visibility flag into a new Store.
// Nothing is cached; callers that mutate should go through WithCart.
func (s *Service) Open(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, domcart.ErrMissingSession
	}
	st := NewStore(ctx, domkv.SessionKeys(s.kv, sessionID), s.opts...)
	st.restoreOpen(ctx)
	return st, nil
}

// WithCart runs fn on a freshly loaded Store while holding the session lock.
func (s *Service) WithCart(ctx context.Context, sessionID string, fn func(st *Store) error) error {
	if sessionID == "" {
		return domcart.ErrMissingSession
	}
	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	st, err := s.Open(ctx, sessionID)
	if err != nil {
		return err
	}
	return fn(st)
}

func (s *Service) view(ctx context.Context, sessionID string, fn func(st *Store)) (View, error) {
	var v View
	err := s.WithCart(ctx, sessionID, func(st *Store) error {
		fn(st)
		v = st.View()
		return nil
	})
	return v, err
}

// AddProduct looks the product up in the catalog and adds one unit. Out of
// stock products and unknown sizes or colors are refused here; the Store
// itself trusts its input.
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID int64, size, color string) (View, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return View{}, err
	}
	if !p.InStock {
		return View{}, domproduct.ErrOutOfStock
	}
	if size != "" && len(p.Sizes) > 0 && !slices.Contains(p.Sizes, size) {
		return View{}, domcart.ErrInvalidVariant
	}
	if color != "" && len(p.Colors) > 0 && !slices.Contains(p.Colors, color) {
		return View{}, domcart.ErrInvalidVariant
	}

	return s.view(ctx, sessionID, func(st *Store) {
		st.AddItem(ctx, *p, size, color)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64, size, color string) (View, error) {
	return s.view(ctx, sessionID, func(st *Store) {
		st.RemoveItem(ctx, productID, size, color)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, size, color string, quantity int64) (View, error) {
	return s.view(ctx, sessionID, func(st *Store) {
		st.UpdateQuantity(ctx, productID, size, color, quantity)
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) (View, error) {
	return s.view(ctx, sessionID, func(st *Store) {
		st.Clear(ctx)
	})
}

// ToggleOpen flips the visibility flag and saves it under kv.KeyCartOpen.
func (s *Service) ToggleOpen(ctx context.Context, sessionID string) (View, error) {
	return s.view(ctx, sessionID, func(st *Store) {
		st.ToggleOpen()
		st.saveOpen(ctx)
	})
}

func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	return s.view(ctx, sessionID, func(*Store) {})
}
