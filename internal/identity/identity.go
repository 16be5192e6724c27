package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the acting user's numeric ID on every request. Clients
// depend on this exact name; it must not change.
const Header = "X-Sharer-User-Id"

const contextKey = "actingUserID"

// Required is a Gin middleware that extracts the acting user's ID from the
// X-Sharer-User-Id header. The value is trusted as-is; no verification
// happens here beyond parsing it as a positive integer.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(Header)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// UserID returns the acting user's ID stored by Required, or 0 if absent.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
