package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"kicharme.com.br/storefront/pkg/global"
	"kicharme.com.br/storefront/pkg/logger"
)

// AdminAuth guards the admin routes. Callers identify with the X-Admin-User
// and X-Admin-Key headers; the key is checked against the configured bcrypt
// hash so the plaintext credential never lives in the process environment.
func (a *App) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetHeader("X-Admin-User")
		key := c.GetHeader("X-Admin-Key")

		if user == "" || key == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Missing admin credentials", []global.ValidationError{
				{Field: "headers", Message: "X-Admin-User and X-Admin-Key headers are required", Code: "unauthorized"},
			}))
			c.Abort()
			return
		}

		if user != a.cfg.AdminUsername ||
			bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminKeyHash), []byte(key)) != nil {
			logger.Warn().Str("user", user).Str("path", c.FullPath()).Msg("rejected admin request")
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid admin credentials", []global.ValidationError{
				{Field: "headers", Message: "admin credentials do not match", Code: "unauthorized"},
			}))
			c.Abort()
			return
		}

		c.Next()
	}
}
