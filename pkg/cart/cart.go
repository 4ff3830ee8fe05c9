// Package cart holds the session shopping cart: an insertion-ordered list of
// line items keyed by variant id or variantless product id. All operations
// are pure local mutations; persistence lives in pkg/redis.
package cart

import (
	"errors"

	"kicharme.com.br/storefront/pkg/models"
)

var (
	// ErrOutOfStock signals an attempt to add an unavailable product or variant.
	ErrOutOfStock = errors.New("out of stock")
	// ErrVariantRequired signals AddProduct on a product sold through variants.
	ErrVariantRequired = errors.New("variant selection required")
	// ErrItemNotFound signals a quantity update for an id not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
)

// Item is one cart line. Name and Price are snapshots taken at insertion;
// later catalog edits do not rewrite them.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is a customer's session cart. The zero value is an empty cart.
type Cart struct {
	Items []Item `json:"items"`
}

// RequiresVariantSelection reports whether the product can only be added
// through AddVariant.
func RequiresVariantSelection(p *models.Product) bool {
	return p.HasVariants()
}

// AddProduct adds one unit of a variantless product, incrementing the
// quantity if the line already exists.
func (c *Cart) AddProduct(p *models.Product) error {
	if p.IsOutOfStock() {
		return ErrOutOfStock
	}
	if p.HasVariants() {
		return ErrVariantRequired
	}
	c.upsert(Item{
		ID:        p.ID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
	})
	return nil
}

// AddVariant adds one unit of a product variant. The line is keyed by the
// variant id and displayed as "{product} {variant}".
func (c *Cart) AddVariant(p *models.Product, v *models.Variant) error {
	if v.OutOfStock {
		return ErrOutOfStock
	}
	c.upsert(Item{
		ID:        v.ID,
		ProductID: p.ID,
		Name:      p.Name + " " + v.Name,
		Price:     p.Price,
	})
	return nil
}

// UpdateQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line, keeping the no-stored-entry-below-one invariant.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		c.Remove(itemID)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes a line if present. Removing an absent id is a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Invoked after a successful checkout.
func (c *Cart) Clear() {
	c.Items = nil
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) upsert(line Item) {
	for i := range c.Items {
		if c.Items[i].ID == line.ID {
			c.Items[i].Quantity++
			return
		}
	}
	line.Quantity = 1
	c.Items = append(c.Items, line)
}
