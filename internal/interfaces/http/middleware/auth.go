package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SupplierAuth guards the supplier feed with a single fixed bearer
// token. A missing or mismatched token answers a bare 400 before any
// request processing, which is what the feed's clients expect.
func SupplierAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		header := c.GetHeader("Authorization")
		provided, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Next()
	}
}
