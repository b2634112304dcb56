package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"fittrack-server/internal/schemas"
	"fittrack-server/internal/utils"
)

// ValidateAndSanitizeStruct binds the JSON body into a fresh copy of the given
// request struct, strips markup from its string fields and validates it. The
// validated payload is stored on the context for the handler.
func ValidateAndSanitizeStruct(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model).Elem()

	return func(c *gin.Context) {
		obj := reflect.New(modelType).Interface()

		if err := c.ShouldBindJSON(obj); err != nil {
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			c.Abort()
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(obj); err != nil {
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			c.Abort()
			return
		}

		if err := validator.Validate.Struct(obj); err != nil {
			utils.WriteAndLogError(c, schemas.InvalidContent, http.StatusBadRequest, err)
			c.Abort()
			return
		}

		c.Set(utils.SanitizedPayloadKey, obj)
		c.Next()
	}
}
