package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

// RequireJSON rejects write requests whose body is not JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != "application/json" {
			err := fmt.Errorf("unsupported content type %q", c.ContentType())
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
