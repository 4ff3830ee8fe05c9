package models

import (
	"time"
)

// DiscountType selects how a DiscountTier value is interpreted.
type DiscountType string

const (
	// DiscountPercentage treats Value as a fraction of the group subtotal (0.15 = 15%).
	DiscountPercentage DiscountType = "percentage"
	// DiscountValue treats Value as a flat currency amount per unit.
	DiscountValue DiscountType = "value"
)

// DiscountTier unlocks a discount once the combined quantity of a product
// (across all of its variants) reaches Quantity.
type DiscountTier struct {
	Quantity int          `json:"quantity" bson:"quantity"`
	Value    float64      `json:"value" bson:"value"`
	Type     DiscountType `json:"type" bson:"type" validate:"omitempty,oneof=percentage value"`
}

// Eligible reports whether the tier may ever apply. Tiers failing this are
// dropped at save time and ignored by the pricing engine.
func (t DiscountTier) Eligible() bool {
	return t.Quantity > 0 && t.Value > 0
}

// Variant is a sellable sub-unit of a product (color, size, volume). Its ID
// is the cart line-item key for products sold through variants.
type Variant struct {
	ID         string `json:"id" bson:"id" validate:"required"`
	Name       string `json:"name" bson:"name" validate:"required,min=1,max=100"`
	OutOfStock bool   `json:"is_out_of_stock" bson:"is_out_of_stock"`
}

// Product represents a catalog product. When Variants is non-empty the
// product is sold only through its variants and they share the base price.
type Product struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Brand       string         `json:"brand" bson:"brand" validate:"required,min=1,max=100"`
	Category    string         `json:"category" bson:"category" validate:"required,min=1,max=100"`
	Description string         `json:"description" bson:"description" validate:"max=2000"`
	Price       float64        `json:"price" bson:"price" validate:"gte=0"`
	ImageURL    string         `json:"image_url" bson:"image_url"`
	Variants    []Variant      `json:"variants,omitempty" bson:"variants,omitempty"`
	OutOfStock  bool           `json:"is_out_of_stock" bson:"is_out_of_stock"`
	Discounts   []DiscountTier `json:"discounts,omitempty" bson:"discounts,omitempty"`
	Featured    bool           `json:"is_featured" bson:"is_featured"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// HasVariants reports whether the product must be added to a cart through a
// specific variant.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// IsOutOfStock derives availability: a product with variants is exhausted
// only when every variant is, otherwise the stored flag is authoritative.
func (p *Product) IsOutOfStock() bool {
	if !p.HasVariants() {
		return p.OutOfStock
	}
	for _, v := range p.Variants {
		if !v.OutOfStock {
			return false
		}
	}
	return true
}

// VariantByID returns the variant with the given id, if any.
func (p *Product) VariantByID(id string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// Sanitize normalises the product before persistence: ineligible discount
// tiers are dropped and the stored stock flag is re-derived from variants.
// Every mutator path must call this so the stored flag stays consistent.
func (p *Product) Sanitize() {
	if len(p.Discounts) > 0 {
		kept := p.Discounts[:0]
		for _, tier := range p.Discounts {
			if tier.Eligible() {
				kept = append(kept, tier)
			}
		}
		p.Discounts = kept
	}
	if p.HasVariants() {
		p.OutOfStock = p.IsOutOfStock()
	}
}

// SetTimestamps sets created_at on first save and always bumps updated_at.
func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// ProductPayload is the request body for admin product create/update.
type ProductPayload struct {
	Name        string         `json:"name" validate:"required,min=2,max=200"`
	Brand       string         `json:"brand" validate:"required,min=1,max=100"`
	Category    string         `json:"category" validate:"required,min=1,max=100"`
	Description string         `json:"description" validate:"max=2000"`
	Price       float64        `json:"price" validate:"gte=0"`
	ImageURL    string         `json:"image_url"`
	Variants    []Variant      `json:"variants" validate:"dive"`
	OutOfStock  bool           `json:"is_out_of_stock"`
	Discounts   []DiscountTier `json:"discounts" validate:"dive"`
	Featured    bool           `json:"is_featured"`
}

// ToProduct builds a Product from the payload. The id is left empty for new
// products; the repository assigns it server-side.
func (req *ProductPayload) ToProduct(id string) *Product {
	p := &Product{
		ID:          id,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Variants:    req.Variants,
		OutOfStock:  req.OutOfStock,
		Discounts:   req.Discounts,
		Featured:    req.Featured,
	}
	p.Sanitize()
	return p
}
