package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/models"
	"kicharme.com.br/storefront/pkg/pricing"
)

const storeNumber = "5566996970685"

func TestComposeOrderMessage(t *testing.T) {
	composer := NewComposer(storeNumber)
	user := &models.User{Name: "Maria", WhatsApp: "5511999990000", Status: models.UserApproved}
	items := []cart.Item{
		{ID: "v1", ProductID: "p1", Name: "Shampoo 500ml", Price: 30, Quantity: 2},
		{ID: "p2", ProductID: "p2", Name: "Condicionador", Price: 25.5, Quantity: 1},
	}
	totals := pricing.Totals{
		Subtotal:  decimal.NewFromFloat(85.5),
		Discount:  decimal.Zero,
		Total:     decimal.NewFromFloat(85.5),
		ItemCount: 3,
	}

	summary := composer.Compose(user, items, totals)

	assert.Contains(t, summary.Message, "Olá! Meu nome é Maria.")
	assert.Contains(t, summary.Message, "*2x* - Shampoo 500ml (R$ 30,00 cada)")
	assert.Contains(t, summary.Message, "*1x* - Condicionador (R$ 25,50 cada)")
	assert.Contains(t, summary.Message, "*Total do Pedido: R$ 85,50*")
	// No discount line when nothing was discounted.
	assert.NotContains(t, summary.Message, "Descontos")
}

func TestComposeIncludesDiscountBreakdown(t *testing.T) {
	composer := NewComposer(storeNumber)
	user := &models.User{Name: "Ana", WhatsApp: "5511988880000", Status: models.UserApproved}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Name: "Máscara", Price: 20, Quantity: 10}}
	totals := pricing.Totals{
		Subtotal:  decimal.NewFromInt(200),
		Discount:  decimal.NewFromInt(30),
		Total:     decimal.NewFromInt(170),
		ItemCount: 10,
	}

	summary := composer.Compose(user, items, totals)

	// Totals are consumed verbatim from the engine.
	assert.Contains(t, summary.Message, "Subtotal: R$ 200,00")
	assert.Contains(t, summary.Message, "Descontos aplicados: -R$ 30,00")
	assert.Contains(t, summary.Message, "*Total do Pedido: R$ 170,00*")
}

func TestComposeDeliveryURI(t *testing.T) {
	composer := NewComposer(storeNumber)
	user := &models.User{Name: "João", WhatsApp: "5511977770000", Status: models.UserApproved}
	items := []cart.Item{{ID: "p1", ProductID: "p1", Name: "Óleo Reparador", Price: 15, Quantity: 1}}
	totals := pricing.Totals{
		Subtotal:  decimal.NewFromInt(15),
		Discount:  decimal.Zero,
		Total:     decimal.NewFromInt(15),
		ItemCount: 1,
	}

	summary := composer.Compose(user, items, totals)

	require.True(t, strings.HasPrefix(summary.WhatsAppURL, "https://wa.me/"+storeNumber+"?text="))

	parsed, err := url.Parse(summary.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, summary.Message, parsed.Query().Get("text"))
}

func TestAccessRequest(t *testing.T) {
	composer := NewComposer(storeNumber)

	summary := composer.AccessRequest("Carla", "5511966660000")

	assert.Contains(t, summary.Message, "Carla")
	assert.Contains(t, summary.Message, "5511966660000")
	assert.Contains(t, summary.Message, "liberação")
	assert.True(t, strings.HasPrefix(summary.WhatsAppURL, "https://wa.me/"+storeNumber+"?text="))
}

func TestFormatCurrencyUsesBrazilianSeparators(t *testing.T) {
	composer := NewComposer(storeNumber)

	assert.Equal(t, "R$ 10,00", composer.FormatCurrency(decimal.NewFromInt(10)))
	assert.Equal(t, "R$ 1.234,56", composer.FormatCurrency(decimal.NewFromFloat(1234.56)))
}
