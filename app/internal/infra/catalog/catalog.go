package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	domproduct "example.com/shareeghor/app/internal/domain/product"
)

//go:embed products.json
var defaultCatalog []byte

type document struct {
	Categories []string             `json:"categories"`
	Products   []domproduct.Product `json:"products"`
}

// Static is a read-only catalog held in memory. Callers get copies, so the
// catalog cannot be mutated through returned products.
type Static struct {
	categories []string
	products   []domproduct.Product
	byID       map[int64]int
}

// NewStatic loads the catalog compiled into the binary.
func NewStatic() (*Static, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Static, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	s := &Static{
		categories: doc.Categories,
		products:   doc.Products,
		byID:       make(map[int64]int, len(doc.Products)),
	}
	for i, p := range doc.Products {
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

func (s *Static) List(_ context.Context) ([]*domproduct.Product, error) {
	out := make([]*domproduct.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, clone(p))
	}
	return out, nil
}

func (s *Static) GetByID(_ context.Context, id int64) (*domproduct.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return clone(s.products[i]), nil
}

func (s *Static) Categories(_ context.Context) ([]string, error) {
	return slices.Clone(s.categories), nil
}

func clone(p domproduct.Product) *domproduct.Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return &p
}
