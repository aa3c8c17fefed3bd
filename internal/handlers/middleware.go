package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "rsvp_session"
	ctxUsernameKey    = "adminUsername"
)

// adminSessionMiddleware guards admin-only routes. It resolves the session
// cookie through the auth service and stores the username in the Gin context.
func (h *Handler) adminSessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "unauthorized",
		})
		return
	}

	sess, err := h.services.Auth.Authenticate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "unauthorized",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUsernameKey, sess.Username)
	c.Next()
}
