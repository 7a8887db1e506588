package product

import (
	"math"
	"strings"
)

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Category      string   `json:"category"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	InStock       bool     `json:"inStock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Image         string   `json:"image"`
}

// DiscountPercent is the rounded markdown from OriginalPrice, 0 when the
// product is not discounted.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 || p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}

func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

const AllCategories = "All"

type PriceRange string

const (
	PriceAny        PriceRange = ""
	PriceUnder1000  PriceRange = "under-1000"
	Price1000To2500 PriceRange = "1000-2500"
	Price2500To5000 PriceRange = "2500-5000"
	PriceAbove5000  PriceRange = "above-5000"
)

func (r PriceRange) IsValid() bool {
	switch r {
	case PriceAny, "all", PriceUnder1000, Price1000To2500, Price2500To5000, PriceAbove5000:
		return true
	default:
		return false
	}
}

func (r PriceRange) Contains(price float64) bool {
	switch r {
	case PriceUnder1000:
		return price < 1000
	case Price1000To2500:
		return price >= 1000 && price <= 2500
	case Price2500To5000:
		return price > 2500 && price <= 5000
	case PriceAbove5000:
		return price > 5000
	default:
		return true
	}
}

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortNewest    SortOrder = "newest"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case "", SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return true
	default:
		return false
	}
}

type ListFilter struct {
	Category string
	Price    PriceRange
	Sort     SortOrder
	Search   string
}

// CategoryFromSlug turns "salwar-kameez" into "salwar kameez" for
// case-insensitive matching against category names.
func CategoryFromSlug(slug string) string {
	return strings.ReplaceAll(strings.TrimSpace(slug), "-", " ")
}
