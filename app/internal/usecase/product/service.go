package product

import (
	"cmp"
	"context"
	"slices"
	"strings"

	dom "example.com/shareeghor/app/internal/domain/product"
)

const (
	DefaultRelatedLimit  = 4
	DefaultFeaturedLimit = 8
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// List filters by category, price range and search text, then sorts. The
// featured order is the catalog order.
func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	if !filter.Price.IsValid() || !filter.Sort.IsValid() {
		return nil, dom.ErrInvalidFilter
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]*dom.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p.Category, filter.Category) {
			continue
		}
		if !filter.Price.Contains(p.Price) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		result = append(result, p)
	}

	switch filter.Sort {
	case dom.SortPriceLow:
		slices.SortStableFunc(result, func(a, b *dom.Product) int { return cmp.Compare(a.Price, b.Price) })
	case dom.SortPriceHigh:
		slices.SortStableFunc(result, func(a, b *dom.Product) int { return cmp.Compare(b.Price, a.Price) })
	case dom.SortRating:
		slices.SortStableFunc(result, func(a, b *dom.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	case dom.SortNewest:
		slices.SortStableFunc(result, func(a, b *dom.Product) int { return cmp.Compare(b.ID, a.ID) })
	}
	return result, nil
}

// Related returns up to limit other products from the same category.
func (s *Service) Related(ctx context.Context, id int64, limit int) ([]*dom.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]*dom.Product, 0, limit)
	for _, other := range products {
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		related = append(related, other)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (s *Service) Featured(ctx context.Context, limit int) ([]*dom.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func matchesCategory(category, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, dom.AllCategories) {
		return true
	}
	return strings.EqualFold(category, want) || strings.EqualFold(category, dom.CategoryFromSlug(want))
}
