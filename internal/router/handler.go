package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/global"
	"kicharme.com.br/storefront/pkg/logger"
	"kicharme.com.br/storefront/pkg/models"
)

// HealthCheck reports process liveness plus whether the catalog snapshot has
// loaded. The endpoint stays 200 even before the first load so orchestrators
// do not restart a process that is merely waiting on its database.
func (a *App) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"status":         "OK",
		"catalog_loaded": a.store.Loaded(),
	}))
}

// ListProducts returns the catalog filtered by the optional brand, category,
// q and featured query parameters.
func (a *App) ListProducts(c *gin.Context) {
	filter := catalog.Filter{
		Brand:        c.Query("brand"),
		Category:     c.Query("category"),
		Search:       c.Query("q"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	products := a.store.Products(filter)
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"products": products,
		"count":    len(products),
	}))
}

// GetProduct returns a single product by id.
func (a *App) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, ok := a.store.Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "no product with id " + id, Code: "not_found"},
		}))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

// ListBrands returns the brand directory merged with brands referenced by
// products.
func (a *App) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"brands": a.store.Brands()}))
}

// ListCategories mirrors ListBrands for categories.
func (a *App) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"categories": a.store.Categories()}))
}

// AuthenticateUser is the customer login-or-register endpoint. A known
// approved user gets their record back; a known pending user is told to
// wait; an unknown number is registered as pending and handed the WhatsApp
// access-request link to send the store.
func (a *App) AuthenticateUser(c *gin.Context) {
	var req models.UserAuthRequest
	if !a.bindJSON(c, &req) {
		return
	}
	req.WhatsApp = normalizeWhatsApp(req.WhatsApp)

	ctx := c.Request.Context()
	user, err := a.users.UserByWhatsApp(ctx, req.WhatsApp)
	switch {
	case err == nil:
		if user.IsApproved() {
			c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"user": user}))
			return
		}
		c.JSON(http.StatusForbidden, global.ErrorResponse("Access pending approval", []global.ValidationError{
			{Field: "whatsapp", Message: "your access request is still awaiting approval", Code: "pending_approval"},
		}))
		return
	case errors.Is(err, catalog.ErrNotFound):
		// first contact, register as pending below
	default:
		logger.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not verify user", nil))
		return
	}

	newUser := models.User{Name: req.Name, WhatsApp: req.WhatsApp, Status: models.UserPending}
	newUser.SetTimestamps()
	created, err := a.users.AddUser(ctx, newUser)
	if err != nil {
		logger.Error().Err(err).Str("whatsapp", req.WhatsApp).Msg("user registration failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not register user", nil))
		return
	}

	request := a.composer.AccessRequest(created.Name, created.WhatsApp)
	c.JSON(http.StatusCreated, global.SuccessResponse(gin.H{
		"user":           created,
		"access_request": request,
	}))
}

// bindJSON decodes and validates a request body, writing the 400 response
// itself on failure.
func (a *App) bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "invalid_json"},
		}))
		return false
	}
	if err := a.validate.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Validation failed", validationErrors(err)))
		return false
	}
	return true
}

func validationErrors(err error) []global.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []global.ValidationError{{Field: "body", Message: err.Error(), Code: "invalid"}}
	}
	out := make([]global.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, global.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed " + fe.Tag() + " validation",
			Code:    fe.Tag(),
		})
	}
	return out
}

// normalizeWhatsApp keeps digits only so the same number always maps to the
// same user record regardless of formatting.
func normalizeWhatsApp(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
