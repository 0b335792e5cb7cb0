package middleware

import (
	"mime"
	"net/http"

	"productivity/utils"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects request bodies that are not declared as JSON on
// methods that carry one.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, &utils.Response{
				Status: http.StatusUnsupportedMediaType,
				Error:  "Content-Type must be application/json",
			})
			return
		}
		c.Next()
	}
}
