// Package pricing implements the quantity-tiered discount engine. Cart lines
// are grouped by parent product so that quantities bought across variants of
// the same product count together toward its discount tiers.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/models"
)

// Resolver maps a cart line id back to its parent product: the product
// itself for variantless lines, or the product owning the variant.
type Resolver interface {
	ResolveParent(lineItemID string) (*models.Product, bool)
}

// Totals is the engine output. Total is deliberately not clamped at zero;
// a negative total means misconfigured tiers and must stay visible.
type Totals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

type group struct {
	product  *models.Product
	quantity int
	subtotal decimal.Decimal
}

// Compute prices the cart. Lines whose parent product cannot be resolved
// (deleted after being added) still count toward subtotal and item count
// but never receive a discount.
func Compute(items []cart.Item, resolver Resolver) Totals {
	totals := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(items))

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		line := decimal.NewFromFloat(item.Price).Mul(qty)
		totals.Subtotal = totals.Subtotal.Add(line)
		totals.ItemCount += item.Quantity

		product, ok := resolver.ResolveParent(item.ID)
		if !ok {
			continue
		}
		g, seen := groups[product.ID]
		if !seen {
			g = &group{product: product, subtotal: decimal.Zero}
			groups[product.ID] = g
			order = append(order, product.ID)
		}
		g.quantity += item.Quantity
		g.subtotal = g.subtotal.Add(line)
	}

	for _, id := range order {
		totals.Discount = totals.Discount.Add(groupDiscount(groups[id]))
	}
	totals.Total = totals.Subtotal.Sub(totals.Discount)
	return totals
}

// groupDiscount selects the highest qualifying tier for a product group and
// returns its contribution. Flat tiers apply to every unit in the group,
// not only the units above the threshold.
func groupDiscount(g *group) decimal.Decimal {
	tier, ok := selectTier(g.product.Discounts, g.quantity)
	if !ok {
		return decimal.Zero
	}
	value := decimal.NewFromFloat(tier.Value)
	switch tier.Type {
	case models.DiscountValue:
		return value.Mul(decimal.NewFromInt(int64(g.quantity)))
	default:
		// percentage of the group subtotal
		return g.subtotal.Mul(value)
	}
}

// selectTier picks the first tier, in descending threshold order, whose
// quantity is covered. The sort is stable, so ties keep their stored order;
// that ordering is observable but not a contract.
func selectTier(tiers []models.DiscountTier, quantity int) (models.DiscountTier, bool) {
	eligible := make([]models.DiscountTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Eligible() {
			eligible = append(eligible, t)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Quantity > eligible[j].Quantity
	})
	for _, t := range eligible {
		if t.Quantity <= quantity {
			return t, true
		}
	}
	return models.DiscountTier{}, false
}
