package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies of mutating requests at n bytes.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			switch c.Request.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
			}
		}
		c.Next()
	}
}
