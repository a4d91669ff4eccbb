package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const visitorIDKey = "visitorId"

// Visitor identifies the browser by a random cookie, issuing one if the
// request carries none or a malformed one.
func Visitor(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.New().String()
		}

		// Refresh on every request so the cookie outlives the stored state
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)

		c.Set(visitorIDKey, id)
		c.Next()
	}
}

// VisitorID returns the id set by Visitor, or "" outside of it
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}
