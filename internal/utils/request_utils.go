package utils

import (
	"github.com/gin-gonic/gin"

	"fittrack-server/internal/schemas"
)

// WriteAndLogResponse writes the response object as JSON with the provided status code.
func WriteAndLogResponse(c *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(c, "info", "Returning response")
	c.JSON(statusCode, response)
}

// WriteAndLogDto wraps the payload in the dto envelope and writes it with the provided status code.
func WriteAndLogDto(c *gin.Context, dto interface{}, statusCode int) {
	WriteAndLogResponse(c, &schemas.DTOEnvelope{Dto: dto}, statusCode)
}

// WriteAndLogError logs the underlying cause and writes the error envelope with
// the specified status code. Only the catalog message reaches the caller.
func WriteAndLogError(c *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	LogMessageWithFields(c, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	c.JSON(statusCode, customErr)
}
