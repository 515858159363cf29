package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const storePingTimeout = 2 * time.Second

// RequireStore answers 503 while the database is unreachable. The server keeps
// running through an outage; store-backed endpoints recover as soon as
// connectivity does.
func RequireStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storePingTimeout)
		defer cancel()

		if err := sqlDB.PingContext(ctx); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
			return
		}

		c.Next()
	}
}
