package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimit applies a fixed window of `limit` requests per `window`
// per authenticated user to the wrapped route. The limiter is
// advisory: if redis is unreachable the request goes through, since
// failing the whole verification flow on a cache outage would be
// worse than letting a burst by.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(ContextUserID)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", name, userID.(uint))

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("[ratelimit] redis unavailable: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "Too many requests. Try again later.",
			})
			return
		}

		c.Next()
	}
}
