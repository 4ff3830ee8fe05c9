package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/global"
	"kicharme.com.br/storefront/pkg/logger"
	"kicharme.com.br/storefront/pkg/pricing"
)

// cartView is the API shape of a session cart: the stored lines plus totals
// recomputed on every read. Totals are never persisted.
type cartView struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Item `json:"items"`
	ItemCount int         `json:"item_count"`
	Subtotal  float64     `json:"subtotal"`
	Discount  float64     `json:"discount"`
	Total     float64     `json:"total"`
}

func (a *App) viewOf(sessionID string, c *cart.Cart) cartView {
	totals := pricing.Compute(c.Items, a.store)
	if totals.Total.IsNegative() {
		logger.Warn().Str("session", sessionID).Str("total", totals.Total.StringFixed(2)).
			Msg("cart total below zero, check discount configuration")
	}
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{
		SessionID: sessionID,
		Items:     items,
		ItemCount: totals.ItemCount,
		Subtotal:  totals.Subtotal.Round(2).InexactFloat64(),
		Discount:  totals.Discount.Round(2).InexactFloat64(),
		Total:     totals.Total.Round(2).InexactFloat64(),
	}
}

func (a *App) sessionID(c *gin.Context) (string, bool) {
	id := c.Param("sessionId")
	if len(id) < 8 || len(id) > 128 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid session id", []global.ValidationError{
			{Field: "sessionId", Message: "session id must be between 8 and 128 characters", Code: "invalid_session"},
		}))
		return "", false
	}
	return id, true
}

func (a *App) loadCart(c *gin.Context, sessionID string) (*cart.Cart, bool) {
	sessionCart, err := a.carts.Get(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("cart load failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not load cart", nil))
		return nil, false
	}
	return sessionCart, true
}

func (a *App) saveAndRespond(c *gin.Context, status int, sessionID string, sessionCart *cart.Cart) {
	if err := a.carts.Save(c.Request.Context(), sessionID, sessionCart); err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("cart save failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not save cart", nil))
		return
	}
	c.JSON(status, global.SuccessResponse(a.viewOf(sessionID, sessionCart)))
}

// GetCart returns the session cart with freshly computed totals.
func (a *App) GetCart(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	sessionCart, ok := a.loadCart(c, sessionID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(a.viewOf(sessionID, sessionCart)))
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
}

// AddCartItem adds one unit of a product or variant to the session cart.
func (a *App) AddCartItem(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if !a.bindJSON(c, &req) {
		return
	}

	product, found := a.store.Product(req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "product_id", Message: "no product with id " + req.ProductID, Code: "not_found"},
		}))
		return
	}

	sessionCart, ok := a.loadCart(c, sessionID)
	if !ok {
		return
	}

	var err error
	if req.VariantID == "" {
		err = sessionCart.AddProduct(&product)
	} else {
		variant, found := product.VariantByID(req.VariantID)
		if !found {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Variant not found", []global.ValidationError{
				{Field: "variant_id", Message: "product has no variant " + req.VariantID, Code: "not_found"},
			}))
			return
		}
		err = sessionCart.AddVariant(&product, variant)
	}

	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, global.ErrorResponse("Out of stock", []global.ValidationError{
			{Field: "product_id", Message: "item is out of stock", Code: "out_of_stock"},
		}))
		return
	case errors.Is(err, cart.ErrVariantRequired):
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Variant selection required", []global.ValidationError{
			{Field: "variant_id", Message: "this product is sold through variants", Code: "variant_required"},
		}))
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not add item", nil))
		return
	}

	a.saveAndRespond(c, http.StatusOK, sessionID, sessionCart)
}

type updateCartItemRequest struct {
	// Pointer so an explicit zero survives decoding; zero removes the line.
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateCartItem overwrites a line's quantity. Zero or less removes the line.
func (a *App) UpdateCartItem(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	var req updateCartItemRequest
	if !a.bindJSON(c, &req) {
		return
	}
	sessionCart, ok := a.loadCart(c, sessionID)
	if !ok {
		return
	}

	if err := sessionCart.UpdateQuantity(c.Param("itemId"), *req.Quantity); err != nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Item not in cart", []global.ValidationError{
			{Field: "itemId", Message: "cart has no item " + c.Param("itemId"), Code: "not_found"},
		}))
		return
	}

	a.saveAndRespond(c, http.StatusOK, sessionID, sessionCart)
}

// RemoveCartItem deletes a line. Removing an absent line still succeeds.
func (a *App) RemoveCartItem(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	sessionCart, ok := a.loadCart(c, sessionID)
	if !ok {
		return
	}
	sessionCart.Remove(c.Param("itemId"))
	a.saveAndRespond(c, http.StatusOK, sessionID, sessionCart)
}

// ClearCart empties the session cart.
func (a *App) ClearCart(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	if err := a.carts.Clear(c.Request.Context(), sessionID); err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("cart clear failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not clear cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(a.viewOf(sessionID, &cart.Cart{})))
}

type checkoutRequest struct {
	WhatsApp string `json:"whatsapp" validate:"required,min=10,max=20"`
}

// Checkout composes the WhatsApp order message for an approved customer and
// clears the cart. Stock is not re-validated here; the order is confirmed by
// a human over the chat channel.
func (a *App) Checkout(c *gin.Context) {
	sessionID, ok := a.sessionID(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if !a.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := a.users.UserByWhatsApp(ctx, normalizeWhatsApp(req.WhatsApp))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Unknown customer", []global.ValidationError{
			{Field: "whatsapp", Message: "no customer registered with this number", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("checkout user lookup failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not verify customer", nil))
		return
	}
	if !user.IsApproved() {
		c.JSON(http.StatusForbidden, global.ErrorResponse("Access pending approval", []global.ValidationError{
			{Field: "whatsapp", Message: "customer is not approved for checkout", Code: "pending_approval"},
		}))
		return
	}

	sessionCart, ok := a.loadCart(c, sessionID)
	if !ok {
		return
	}
	if sessionCart.IsEmpty() {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
			{Field: "cart", Message: "add items before checking out", Code: "empty_cart"},
		}))
		return
	}

	totals := pricing.Compute(sessionCart.Items, a.store)
	summary := a.composer.Compose(&user, sessionCart.Items, totals)

	if err := a.carts.Clear(ctx, sessionID); err != nil {
		logger.Warn().Err(err).Str("session", sessionID).Msg("cart clear after checkout failed")
	}

	logger.Info().Str("session", sessionID).Str("whatsapp", user.WhatsApp).
		Int("items", totals.ItemCount).Str("total", totals.Total.StringFixed(2)).
		Msg("checkout composed")

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"summary": summary,
		"cart":    a.viewOf(sessionID, &cart.Cart{}),
		"totals": gin.H{
			"subtotal":   totals.Subtotal.Round(2).InexactFloat64(),
			"discount":   totals.Discount.Round(2).InexactFloat64(),
			"total":      totals.Total.Round(2).InexactFloat64(),
			"item_count": totals.ItemCount,
		},
	}))
}
