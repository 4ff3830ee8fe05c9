package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kicharme.com.br/storefront/pkg/models"
)

func simpleProduct(id string, price float64) *models.Product {
	return &models.Product{ID: id, Name: "Produto " + id, Price: price}
}

func variantProduct() *models.Product {
	return &models.Product{
		ID:    "p1",
		Name:  "Shampoo",
		Price: 30,
		Variants: []models.Variant{
			{ID: "v1", Name: "500ml"},
			{ID: "v2", Name: "1L", OutOfStock: true},
		},
	}
}

func TestAddProductIncrementsExistingLine(t *testing.T) {
	var c Cart
	p := simpleProduct("p1", 10)

	require.NoError(t, c.AddProduct(p))
	require.NoError(t, c.AddProduct(p))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "p1", c.Items[0].ID)
	assert.Equal(t, 2, c.ItemCount())
}

func TestAddProductRejectsOutOfStock(t *testing.T) {
	var c Cart
	p := simpleProduct("p1", 10)
	p.OutOfStock = true

	err := c.AddProduct(p)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestAddProductRequiresVariantSelection(t *testing.T) {
	var c Cart
	p := variantProduct()

	assert.True(t, RequiresVariantSelection(p))
	err := c.AddProduct(p)
	assert.ErrorIs(t, err, ErrVariantRequired)
	assert.True(t, c.IsEmpty())
}

func TestAddVariantComposesDisplayName(t *testing.T) {
	var c Cart
	p := variantProduct()
	v, ok := p.VariantByID("v1")
	require.True(t, ok)

	require.NoError(t, c.AddVariant(p, v))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "v1", c.Items[0].ID)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, "Shampoo 500ml", c.Items[0].Name)
	assert.Equal(t, 30.0, c.Items[0].Price)
}

func TestAddVariantRejectsExhaustedVariant(t *testing.T) {
	var c Cart
	p := variantProduct()
	v, ok := p.VariantByID("v2")
	require.True(t, ok)

	err := c.AddVariant(p, v)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityFloor(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddProduct(simpleProduct("p1", 10)))

	require.NoError(t, c.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, c.Items[0].Quantity)

	// Zero and negative quantities remove the line instead of storing it.
	require.NoError(t, c.UpdateQuantity("p1", 0))
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.AddProduct(simpleProduct("p1", 10)))
	require.NoError(t, c.UpdateQuantity("p1", -3))
	assert.True(t, c.IsEmpty())

	for _, item := range c.Items {
		assert.Greater(t, item.Quantity, 0)
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	var c Cart
	err := c.UpdateQuantity("ghost", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Removal form is a no-op for unknown ids.
	require.NoError(t, c.UpdateQuantity("ghost", 0))
}

func TestRemoveIsIdempotent(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddProduct(simpleProduct("p1", 10)))
	require.NoError(t, c.AddProduct(simpleProduct("p2", 20)))

	c.Remove("p1")
	first := len(c.Items)
	c.Remove("p1")

	assert.Equal(t, first, len(c.Items))
	assert.Equal(t, "p2", c.Items[0].ID)
}

func TestInsertionOrderPreserved(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddProduct(simpleProduct("p3", 1)))
	require.NoError(t, c.AddProduct(simpleProduct("p1", 1)))
	require.NoError(t, c.AddProduct(simpleProduct("p2", 1)))
	require.NoError(t, c.AddProduct(simpleProduct("p1", 1)))

	ids := []string{c.Items[0].ID, c.Items[1].ID, c.Items[2].ID}
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}

func TestAddUpdateRemoveRoundTrip(t *testing.T) {
	var c Cart
	p := simpleProduct("p1", 15)

	require.NoError(t, c.AddProduct(p))
	assert.Equal(t, 1, c.Items[0].Quantity)

	require.NoError(t, c.AddProduct(p))
	assert.Equal(t, 2, c.Items[0].Quantity)

	require.NoError(t, c.UpdateQuantity("p1", 0))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}

func TestClear(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddProduct(simpleProduct("p1", 10)))
	c.Clear()
	assert.True(t, c.IsEmpty())
}
