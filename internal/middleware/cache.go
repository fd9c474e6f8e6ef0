package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControl lets clients reuse graph reads for maxAge. The graph only
// changes on a reload. Error responses override the header with no-store.
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	header := fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds()))
	return func(c *gin.Context) {
		c.Header("Cache-Control", header)
		c.Next()
	}
}
