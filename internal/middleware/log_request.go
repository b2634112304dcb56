package middleware

import (
	"github.com/gin-gonic/gin"

	"fittrack-server/internal/utils"
)

func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		message := "Request received: " + c.Request.Method + " " + c.Request.URL.Path
		utils.LogMessageWithFields(c, "info", message)
		c.Next()
	}
}
