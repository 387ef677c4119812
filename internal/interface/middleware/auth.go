package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/weekly-report-api/pkg/helpers"
	"github.com/oksasatya/weekly-report-api/pkg/response"
)

// Auth validates the session cookie and ensures an active session exists
// in Redis. It sets userID, userName, and userEmail in the Gin context on
// success. Anything less than a valid, live session answers 401.
func Auth(rdb *redis.Client, session *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := session.Parse(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid session", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		// The cookie alone is not enough; logout kills the Redis session
		// and with it every copy of the cookie. Without a client no
		// session can be confirmed, so fail closed.
		if rdb == nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			resp := response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", data["name"])
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
