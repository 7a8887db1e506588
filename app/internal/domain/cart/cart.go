package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	domproduct "example.com/shareeghor/app/internal/domain/product"
)

// Key identifies a line: one product variant.
type Key struct {
	ProductID int64
	Size      string
	Color     string
}

type Line struct {
	domproduct.Product
	Quantity      int64  `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

func (l Line) Key() Key {
	return Key{ProductID: l.ID, Size: l.SelectedSize, Color: l.SelectedColor}
}

func (l Line) Subtotal() float64 {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(l.Quantity)).InexactFloat64()
}

// Clone returns a copy that shares no slices with l.
func (l Line) Clone() Line {
	l.Sizes = slices.Clone(l.Sizes)
	l.Colors = slices.Clone(l.Colors)
	return l
}

// Cart holds lines in insertion order. No two lines share a Key.
type Cart struct {
	Lines []Line
	Open  bool
}

func New(lines []Line) *Cart {
	c := &Cart{Lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		c.Lines = append(c.Lines, l.Clone())
	}
	return c
}

func (c *Cart) indexOf(k Key) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.Key() == k })
}

// Add increments the matching line or appends a new one with quantity 1.
// Empty size or color fall back to the product's first listed option.
func (c *Cart) Add(p domproduct.Product, size, color string) {
	if size == "" {
		size = p.DefaultSize()
	}
	if color == "" {
		color = p.DefaultColor()
	}

	k := Key{ProductID: p.ID, Size: size, Color: color}
	if i := c.indexOf(k); i >= 0 {
		c.Lines[i].Quantity++
		return
	}

	line := Line{Product: p, Quantity: 1, SelectedSize: size, SelectedColor: color}
	c.Lines = append(c.Lines, line.Clone())
}

func (c *Cart) Remove(k Key) {
	c.Lines = slices.DeleteFunc(c.Lines, func(l Line) bool { return l.Key() == k })
}

// UpdateQuantity sets the quantity of the matching line. Anything below 1
// removes the line.
func (c *Cart) UpdateQuantity(k Key, quantity int64) {
	if quantity < 1 {
		c.Remove(k)
		return
	}
	if i := c.indexOf(k); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) Total() float64 {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(l.Quantity)))
	}
	return sum.InexactFloat64()
}

func (c *Cart) ItemCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Snapshot returns a deep copy of the lines.
func (c *Cart) Snapshot() []Line {
	out := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		out = append(out, l.Clone())
	}
	return out
}
