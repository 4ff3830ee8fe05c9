package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOutOfStockWithoutVariants(t *testing.T) {
	p := &Product{ID: "p1", Name: "Shampoo", OutOfStock: false}
	assert.False(t, p.IsOutOfStock())

	p.OutOfStock = true
	assert.True(t, p.IsOutOfStock())
}

func TestIsOutOfStockDerivedFromVariants(t *testing.T) {
	tests := []struct {
		name     string
		variants []Variant
		want     bool
	}{
		{
			name: "all variants exhausted",
			variants: []Variant{
				{ID: "v1", Name: "500ml", OutOfStock: true},
				{ID: "v2", Name: "1L", OutOfStock: true},
			},
			want: true,
		},
		{
			name: "one variant available",
			variants: []Variant{
				{ID: "v1", Name: "500ml", OutOfStock: true},
				{ID: "v2", Name: "1L", OutOfStock: false},
			},
			want: false,
		},
		{
			name: "all variants available",
			variants: []Variant{
				{ID: "v1", Name: "500ml"},
				{ID: "v2", Name: "1L"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The stored flag must not matter when variants exist.
			p := &Product{ID: "p1", Variants: tt.variants, OutOfStock: !tt.want}
			assert.Equal(t, tt.want, p.IsOutOfStock())
		})
	}
}

func TestSanitizeDropsIneligibleTiers(t *testing.T) {
	p := &Product{
		ID: "p1",
		Discounts: []DiscountTier{
			{Quantity: 10, Value: 0.15, Type: DiscountPercentage},
			{Quantity: 0, Value: 0.5, Type: DiscountPercentage},
			{Quantity: 5, Value: 0, Type: DiscountValue},
			{Quantity: -3, Value: 2, Type: DiscountValue},
			{Quantity: 5, Value: 2, Type: DiscountValue},
		},
	}

	p.Sanitize()

	require.Len(t, p.Discounts, 2)
	assert.Equal(t, 10, p.Discounts[0].Quantity)
	assert.Equal(t, 5, p.Discounts[1].Quantity)
}

func TestSanitizeDerivesStockFlagFromVariants(t *testing.T) {
	p := &Product{
		ID:         "p1",
		OutOfStock: false,
		Variants: []Variant{
			{ID: "v1", Name: "A", OutOfStock: true},
			{ID: "v2", Name: "B", OutOfStock: true},
		},
	}

	p.Sanitize()
	assert.True(t, p.OutOfStock)

	p.Variants[1].OutOfStock = false
	p.Sanitize()
	assert.False(t, p.OutOfStock)
}

func TestSanitizeLeavesVariantlessFlagAlone(t *testing.T) {
	p := &Product{ID: "p1", OutOfStock: true}
	p.Sanitize()
	assert.True(t, p.OutOfStock)
}

func TestVariantByID(t *testing.T) {
	p := &Product{
		ID: "p1",
		Variants: []Variant{
			{ID: "v1", Name: "500ml"},
			{ID: "v2", Name: "1L"},
		},
	}

	v, ok := p.VariantByID("v2")
	require.True(t, ok)
	assert.Equal(t, "1L", v.Name)

	_, ok = p.VariantByID("missing")
	assert.False(t, ok)
}

func TestToProductSanitizes(t *testing.T) {
	req := &ProductPayload{
		Name:     "Máscara Capilar",
		Brand:    "KiCharme",
		Category: "Tratamento",
		Price:    49.9,
		Variants: []Variant{
			{ID: "v1", Name: "300g", OutOfStock: true},
			{ID: "v2", Name: "500g", OutOfStock: true},
		},
		Discounts: []DiscountTier{
			{Quantity: 0, Value: 1, Type: DiscountValue},
			{Quantity: 6, Value: 0.1, Type: DiscountPercentage},
		},
	}

	p := req.ToProduct("")

	assert.Empty(t, p.ID)
	assert.True(t, p.OutOfStock)
	require.Len(t, p.Discounts, 1)
	assert.Equal(t, 6, p.Discounts[0].Quantity)
}
