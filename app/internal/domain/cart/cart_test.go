package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/shareeghor/app/internal/domain/product"
)

func sampleSaree() domproduct.Product {
	return domproduct.Product{
		ID:            1,
		Name:          "Jamdani Saree",
		Price:         2500,
		OriginalPrice: 3200,
		Category:      "Sarees",
		Sizes:         []string{"Free Size"},
		Colors:        []string{"Red", "Blue"},
		InStock:       true,
	}
}

func sampleKurti() domproduct.Product {
	return domproduct.Product{
		ID:       7,
		Name:     "Cotton Kurti",
		Price:    850,
		Category: "Kurtis",
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"White"},
		InStock:  true,
	}
}

func TestAdd_RepeatedAddsMergeIntoOneLine(t *testing.T) {
	c := New(nil)
	for i := 0; i < 5; i++ {
		c.Add(sampleSaree(), "Free Size", "Blue")
	}

	require.Len(t, c.Lines, 1)
	require.Equal(t, int64(5), c.Lines[0].Quantity)
}

func TestAdd_DefaultsToFirstOptions(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "", "")

	require.Len(t, c.Lines, 1)
	require.Equal(t, "S", c.Lines[0].SelectedSize)
	require.Equal(t, "White", c.Lines[0].SelectedColor)

	// an explicit first option lands on the same line
	c.Add(sampleKurti(), "S", "White")
	require.Len(t, c.Lines, 1)
	require.Equal(t, int64(2), c.Lines[0].Quantity)
}

func TestAdd_DistinctVariantsKeepInsertionOrder(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "M", "White")
	c.Add(sampleSaree(), "Free Size", "Red")
	c.Add(sampleKurti(), "L", "White")

	require.Len(t, c.Lines, 3)
	require.Equal(t, Key{ProductID: 7, Size: "M", Color: "White"}, c.Lines[0].Key())
	require.Equal(t, Key{ProductID: 1, Size: "Free Size", Color: "Red"}, c.Lines[1].Key())
	require.Equal(t, Key{ProductID: 7, Size: "L", Color: "White"}, c.Lines[2].Key())
}

func TestAdd_LineDoesNotShareProductSlices(t *testing.T) {
	p := sampleKurti()
	c := New(nil)
	c.Add(p, "", "")

	p.Sizes[0] = "XXL"
	require.Equal(t, "S", c.Lines[0].Sizes[0])
}

func TestRemove_RoundTripRestoresPriorState(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "M", "White")
	before := c.Snapshot()

	c.Add(sampleSaree(), "Free Size", "Red")
	c.Remove(Key{ProductID: 1, Size: "Free Size", Color: "Red"})

	require.Equal(t, before, c.Snapshot())
}

func TestRemove_MissingLineIsNoop(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "M", "White")

	c.Remove(Key{ProductID: 99, Size: "M", Color: "White"})
	c.Remove(Key{ProductID: 7, Size: "L", Color: "White"})

	require.Len(t, c.Lines, 1)
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	k := Key{ProductID: 7, Size: "M", Color: "White"}

	removed := New(nil)
	removed.Add(sampleSaree(), "", "")
	removed.Add(sampleKurti(), "M", "White")
	removed.Remove(k)

	updated := New(nil)
	updated.Add(sampleSaree(), "", "")
	updated.Add(sampleKurti(), "M", "White")
	updated.UpdateQuantity(k, 0)

	require.Equal(t, removed.Snapshot(), updated.Snapshot())
}

func TestUpdateQuantity_SetsValueWithoutUpperBound(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "M", "White")

	c.UpdateQuantity(Key{ProductID: 7, Size: "M", Color: "White"}, 250)
	require.Equal(t, int64(250), c.Lines[0].Quantity)

	c.UpdateQuantity(Key{ProductID: 7, Size: "M", Color: "White"}, -3)
	require.Empty(t, c.Lines)
}

func TestUpdateQuantity_MissingLineIsNoop(t *testing.T) {
	c := New(nil)
	c.Add(sampleKurti(), "M", "White")

	c.UpdateQuantity(Key{ProductID: 7, Size: "XL", Color: "White"}, 4)

	require.Len(t, c.Lines, 1)
	require.Equal(t, int64(1), c.Lines[0].Quantity)
}

func TestTotalsAndCounts(t *testing.T) {
	c := New(nil)
	require.Zero(t, c.Total())
	require.Zero(t, c.ItemCount())

	c.Add(sampleSaree(), "", "Red")
	c.Add(sampleSaree(), "", "Red")
	c.Add(sampleKurti(), "L", "")
	c.UpdateQuantity(Key{ProductID: 7, Size: "L", Color: "White"}, 3)

	require.Equal(t, 2*2500.0+3*850.0, c.Total())
	require.Equal(t, int64(5), c.ItemCount())
	require.Len(t, c.Lines, 2)
}

func TestClear(t *testing.T) {
	c := New(nil)
	c.Add(sampleSaree(), "", "")
	c.Clear()

	require.Empty(t, c.Lines)
	require.Zero(t, c.Total())
}
