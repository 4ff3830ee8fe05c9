// Package checkout turns a priced cart into the WhatsApp order message the
// store receives. It consumes the pricing engine's totals verbatim and never
// re-derives prices.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/models"
	"kicharme.com.br/storefront/pkg/pricing"
)

// Summary is the checkout handoff: the plain-text order message and the
// wa.me link that delivers it. No response is awaited from the channel.
type Summary struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Composer formats order summaries for one store number.
type Composer struct {
	storeWhatsApp string
	printer       *message.Printer
}

// NewComposer returns a Composer delivering to the given store WhatsApp
// number (digits only, country code included).
func NewComposer(storeWhatsApp string) *Composer {
	return &Composer{
		storeWhatsApp: storeWhatsApp,
		printer:       message.NewPrinter(language.BrazilianPortuguese),
	}
}

// Compose builds the order message for an approved customer.
func (c *Composer) Compose(user *models.User, items []cart.Item, totals pricing.Totals) Summary {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! Meu nome é %s.\n\nGostaria de fazer o seguinte pedido:\n\n", user.Name)
	for _, item := range items {
		fmt.Fprintf(&b, "*%dx* - %s (%s cada)\n", item.Quantity, item.Name, c.FormatCurrency(decimal.NewFromFloat(item.Price)))
	}
	if totals.Discount.IsPositive() {
		fmt.Fprintf(&b, "\nSubtotal: %s\n", c.FormatCurrency(totals.Subtotal))
		fmt.Fprintf(&b, "Descontos aplicados: -%s\n", c.FormatCurrency(totals.Discount))
	}
	fmt.Fprintf(&b, "\n*Total do Pedido: %s*", c.FormatCurrency(totals.Total))

	msg := b.String()
	return Summary{Message: msg, WhatsAppURL: c.link(msg)}
}

// AccessRequest builds the message a new customer sends the store to ask
// for catalog access approval.
func (c *Composer) AccessRequest(name, whatsapp string) Summary {
	msg := fmt.Sprintf(
		"Olá! Meu nome é %s e meu WhatsApp é %s. Gostaria de solicitar a liberação para acessar o catálogo da KI CHARME.",
		name, whatsapp,
	)
	return Summary{Message: msg, WhatsAppURL: c.link(msg)}
}

// FormatCurrency renders a BRL amount with pt-BR separators.
func (c *Composer) FormatCurrency(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return c.printer.Sprintf("R$ %.2f", f)
}

func (c *Composer) link(msg string) string {
	return "https://wa.me/" + c.storeWhatsApp + "?text=" + url.QueryEscape(msg)
}
