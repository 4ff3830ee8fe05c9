package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/models"
)

// stubResolver maps both product ids and variant ids to parents, the way the
// catalog store does.
type stubResolver struct {
	products []*models.Product
}

func (s *stubResolver) ResolveParent(lineItemID string) (*models.Product, bool) {
	for _, p := range s.products {
		if p.ID == lineItemID && !p.HasVariants() {
			return p, true
		}
		if _, ok := p.VariantByID(lineItemID); ok {
			return p, true
		}
	}
	return nil, false
}

func TestComputeEmptyCart(t *testing.T) {
	totals := Compute(nil, &stubResolver{})

	assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "0.00", totals.Total.StringFixed(2))
	assert.Zero(t, totals.ItemCount)
}

func TestPercentageTier(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:        "p1",
		Price:     20,
		Discounts: []models.DiscountTier{{Quantity: 10, Value: 0.15, Type: models.DiscountPercentage}},
	}}}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Price: 20, Quantity: 10}}

	totals := Compute(items, resolver)

	assert.Equal(t, "200.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "30.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "170.00", totals.Total.StringFixed(2))
	assert.Equal(t, 10, totals.ItemCount)
}

func TestFlatTierAppliesToAllUnits(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:        "p1",
		Price:     12.5,
		Discounts: []models.DiscountTier{{Quantity: 5, Value: 2, Type: models.DiscountValue}},
	}}}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Price: 12.5, Quantity: 8}}

	totals := Compute(items, resolver)

	// 8 units x 2.00, not just the 3 above the threshold.
	assert.Equal(t, "16.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "84.00", totals.Total.StringFixed(2))
}

func TestCrossVariantAggregation(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:    "p1",
		Name:  "Shampoo",
		Price: 10,
		Variants: []models.Variant{
			{ID: "v1", Name: "500ml"},
			{ID: "v2", Name: "1L"},
		},
		Discounts: []models.DiscountTier{{Quantity: 10, Value: 0.1, Type: models.DiscountPercentage}},
	}}}
	items := []cart.Item{
		{ID: "v1", ProductID: "p1", Price: 10, Quantity: 3},
		{ID: "v2", ProductID: "p1", Price: 10, Quantity: 7},
	}

	totals := Compute(items, resolver)

	// 3 + 7 units of the same parent qualify for the 10-unit tier.
	assert.Equal(t, "100.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "90.00", totals.Total.StringFixed(2))
}

func TestNoTierQualifies(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:        "p1",
		Price:     20,
		Discounts: []models.DiscountTier{{Quantity: 10, Value: 0.15, Type: models.DiscountPercentage}},
	}}}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Price: 20, Quantity: 5}}

	totals := Compute(items, resolver)

	assert.Equal(t, "0.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "100.00", totals.Total.StringFixed(2))
}

func TestHighestQualifyingTierWins(t *testing.T) {
	tiers := []models.DiscountTier{
		{Quantity: 5, Value: 0.05, Type: models.DiscountPercentage},
		{Quantity: 20, Value: 0.2, Type: models.DiscountPercentage},
		{Quantity: 10, Value: 0.1, Type: models.DiscountPercentage},
	}

	tier, ok := selectTier(tiers, 12)
	require.True(t, ok)
	assert.Equal(t, 10, tier.Quantity)

	tier, ok = selectTier(tiers, 25)
	require.True(t, ok)
	assert.Equal(t, 20, tier.Quantity)
}

func TestTierSelectionMonotonic(t *testing.T) {
	tiers := []models.DiscountTier{
		{Quantity: 3, Value: 0.03, Type: models.DiscountPercentage},
		{Quantity: 6, Value: 0.06, Type: models.DiscountPercentage},
		{Quantity: 12, Value: 0.12, Type: models.DiscountPercentage},
	}

	// Increasing quantity never selects a lower threshold.
	prev := 0
	for qty := 1; qty <= 20; qty++ {
		tier, ok := selectTier(tiers, qty)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, tier.Quantity, prev, "quantity %d", qty)
		prev = tier.Quantity
	}
}

func TestIneligibleTiersIgnored(t *testing.T) {
	tiers := []models.DiscountTier{
		{Quantity: 0, Value: 0.5, Type: models.DiscountPercentage},
		{Quantity: 5, Value: 0, Type: models.DiscountValue},
	}

	_, ok := selectTier(tiers, 100)
	assert.False(t, ok)
}

func TestUnresolvedParentStillCounted(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:        "p1",
		Price:     10,
		Discounts: []models.DiscountTier{{Quantity: 1, Value: 0.1, Type: models.DiscountPercentage}},
	}}}
	items := []cart.Item{
		{ID: "p1", ProductID: "p1", Price: 10, Quantity: 2},
		// Parent deleted from the catalog after it was added to the cart.
		{ID: "gone", ProductID: "gone", Price: 7, Quantity: 3},
	}

	totals := Compute(items, resolver)

	assert.Equal(t, "41.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, 5, totals.ItemCount)
	// Only the resolved group is discounted.
	assert.Equal(t, "2.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "39.00", totals.Total.StringFixed(2))
}

func TestMisconfiguredFlatTierCanDriveTotalNegative(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{{
		ID:        "p1",
		Price:     1,
		Discounts: []models.DiscountTier{{Quantity: 1, Value: 5, Type: models.DiscountValue}},
	}}}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Price: 1, Quantity: 2}}

	totals := Compute(items, resolver)

	// Surfaced, not silently clamped.
	assert.Equal(t, "-8.00", totals.Total.StringFixed(2))
}

func TestMultipleGroupsSumContributions(t *testing.T) {
	resolver := &stubResolver{products: []*models.Product{
		{
			ID:        "p1",
			Price:     20,
			Discounts: []models.DiscountTier{{Quantity: 2, Value: 0.1, Type: models.DiscountPercentage}},
		},
		{
			ID:        "p2",
			Price:     5,
			Discounts: []models.DiscountTier{{Quantity: 4, Value: 1, Type: models.DiscountValue}},
		},
	}}
	items := []cart.Item{
		{ID: "p1", ProductID: "p1", Price: 20, Quantity: 2},
		{ID: "p2", ProductID: "p2", Price: 5, Quantity: 4},
	}

	totals := Compute(items, resolver)

	// 10% of 40.00 plus 4 x 1.00.
	assert.Equal(t, "8.00", totals.Discount.StringFixed(2))
	assert.Equal(t, "52.00", totals.Total.StringFixed(2))
}
