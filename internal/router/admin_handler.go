package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kicharme.com.br/storefront/pkg/ai"
	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/global"
	"kicharme.com.br/storefront/pkg/logger"
	"kicharme.com.br/storefront/pkg/models"
)

// CreateProduct persists a new product and returns it with its assigned id.
func (a *App) CreateProduct(c *gin.Context) {
	var payload models.ProductPayload
	if !a.bindJSON(c, &payload) {
		return
	}
	saved, err := a.store.SaveProduct(c.Request.Context(), *payload.ToProduct(""))
	if err != nil {
		logger.Error().Err(err).Str("name", payload.Name).Msg("product create failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not save product", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(saved))
}

// UpdateProduct replaces an existing product. The creation timestamp is
// carried over from the stored record.
func (a *App) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	existing, found := a.store.Product(id)
	if !found {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "no product with id " + id, Code: "not_found"},
		}))
		return
	}
	var payload models.ProductPayload
	if !a.bindJSON(c, &payload) {
		return
	}
	product := payload.ToProduct(id)
	product.CreatedAt = existing.CreatedAt

	saved, err := a.store.SaveProduct(c.Request.Context(), *product)
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("product update failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not save product", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(saved))
}

// DeleteProduct removes a product from the catalog.
func (a *App) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := a.store.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "id", Message: "no product with id " + id, Code: "not_found"},
			}))
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("product delete failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not delete product", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"deleted": id}))
}

type nameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type renameRequest struct {
	OldName string `json:"old_name" validate:"required,min=1,max=100"`
	NewName string `json:"new_name" validate:"required,min=1,max=100"`
}

func (a *App) addName(c *gin.Context, kind string, add func(*gin.Context, string) error) {
	var req nameRequest
	if !a.bindJSON(c, &req) {
		return
	}
	if err := add(c, req.Name); err != nil {
		if errors.Is(err, catalog.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse(kind+" already exists", []global.ValidationError{
				{Field: "name", Message: req.Name + " is already registered", Code: "already_exists"},
			}))
			return
		}
		logger.Error().Err(err).Str("name", req.Name).Msg(kind + " create failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not save "+kind, nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(gin.H{"name": req.Name}))
}

func (a *App) renameName(c *gin.Context, kind string, rename func(*gin.Context, string, string) error) {
	var req renameRequest
	if !a.bindJSON(c, &req) {
		return
	}
	if err := rename(c, req.OldName, req.NewName); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse(kind+" not found", []global.ValidationError{
				{Field: "old_name", Message: req.OldName + " is not registered", Code: "not_found"},
			}))
			return
		}
		logger.Error().Err(err).Str("old", req.OldName).Str("new", req.NewName).Msg(kind + " rename failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not rename "+kind, nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"name": req.NewName}))
}

func (a *App) deleteName(c *gin.Context, kind string, del func(*gin.Context, string) error) {
	name := c.Param("name")
	if err := del(c, name); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse(kind+" not found", []global.ValidationError{
				{Field: "name", Message: name + " is not registered", Code: "not_found"},
			}))
			return
		}
		logger.Error().Err(err).Str("name", name).Msg(kind + " delete failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not delete "+kind, nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"deleted": name}))
}

// AddBrand registers a brand in the directory.
func (a *App) AddBrand(c *gin.Context) {
	a.addName(c, "Brand", func(c *gin.Context, name string) error {
		return a.store.AddBrand(c.Request.Context(), name)
	})
}

// RenameBrand renames a brand, cascading to products referencing it.
func (a *App) RenameBrand(c *gin.Context) {
	a.renameName(c, "Brand", func(c *gin.Context, oldName, newName string) error {
		return a.store.RenameBrand(c.Request.Context(), oldName, newName)
	})
}

// DeleteBrand removes a brand from the directory. Products keep their brand
// text and the name stays listed until the last product drops it.
func (a *App) DeleteBrand(c *gin.Context) {
	a.deleteName(c, "Brand", func(c *gin.Context, name string) error {
		return a.store.DeleteBrand(c.Request.Context(), name)
	})
}

// AddCategory registers a category in the directory.
func (a *App) AddCategory(c *gin.Context) {
	a.addName(c, "Category", func(c *gin.Context, name string) error {
		return a.store.AddCategory(c.Request.Context(), name)
	})
}

// RenameCategory renames a category, cascading to products referencing it.
func (a *App) RenameCategory(c *gin.Context) {
	a.renameName(c, "Category", func(c *gin.Context, oldName, newName string) error {
		return a.store.RenameCategory(c.Request.Context(), oldName, newName)
	})
}

// DeleteCategory removes a category from the directory.
func (a *App) DeleteCategory(c *gin.Context) {
	a.deleteName(c, "Category", func(c *gin.Context, name string) error {
		return a.store.DeleteCategory(c.Request.Context(), name)
	})
}

// ListUsers returns every customer record, pending and approved.
func (a *App) ListUsers(c *gin.Context) {
	users, err := a.users.Users(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("user list failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not list users", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"users": users,
		"count": len(users),
	}))
}

// ApproveUser grants a pending customer catalog access.
func (a *App) ApproveUser(c *gin.Context) {
	whatsapp := c.Param("whatsapp")
	user, err := a.users.UpdateUserStatus(c.Request.Context(), whatsapp, models.UserApproved)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", []global.ValidationError{
				{Field: "whatsapp", Message: "no user registered with " + whatsapp, Code: "not_found"},
			}))
			return
		}
		logger.Error().Err(err).Str("whatsapp", whatsapp).Msg("user approval failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not approve user", nil))
		return
	}
	logger.Info().Str("whatsapp", whatsapp).Msg("user approved")
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"user": user}))
}

// DeleteUser removes a customer record, revoking access.
func (a *App) DeleteUser(c *gin.Context) {
	whatsapp := c.Param("whatsapp")
	if err := a.users.DeleteUser(c.Request.Context(), whatsapp); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", []global.ValidationError{
				{Field: "whatsapp", Message: "no user registered with " + whatsapp, Code: "not_found"},
			}))
			return
		}
		logger.Error().Err(err).Str("whatsapp", whatsapp).Msg("user delete failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not delete user", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"deleted": whatsapp}))
}

// CatalogInsights returns the AI-assisted catalog report. The report always
// carries the raw summary; the narrative section depends on the AI backend
// being configured.
func (a *App) CatalogInsights(c *gin.Context) {
	report, err := ai.GenerateCatalogReport(c.Request.Context(), a.store.Products(catalog.Filter{}))
	if err != nil {
		logger.Error().Err(err).Msg("catalog report failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not generate report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

// DiscountInsights returns the AI-assisted discount configuration report.
func (a *App) DiscountInsights(c *gin.Context) {
	report, err := ai.GenerateDiscountReport(c.Request.Context(), a.store.Products(catalog.Filter{}))
	if err != nil {
		logger.Error().Err(err).Msg("discount report failed")
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Could not generate report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
