package apihandlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"librisk/internal/services"
)

const (
	// UserIDHeader carries the identity asserted by a trusted proxy. It is
	// ignored unless IdentityOptions.TrustHeader is set.
	UserIDHeader = "X-User-ID"

	userIDKey       = "librisk.user_id"
	cookieMaxAgeSec = 365 * 24 * 60 * 60
)

// IdentityOptions configures IdentityMiddleware.
type IdentityOptions struct {
	CookieName string
	// TrustHeader accepts UserIDHeader ahead of the cookie. Any client can
	// set the header, so only enable it behind an authenticating proxy.
	TrustHeader bool
}

// IdentityMiddleware resolves the caller identity from the trusted header
// or the cookie, in that order. A caller with neither gets a fresh UUID, set
// as a cookie, and a user row.
func IdentityMiddleware(opts IdentityOptions, history *services.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID string
		if opts.TrustHeader {
			userID = strings.TrimSpace(c.GetHeader(UserIDHeader))
		}
		if userID == "" {
			if v, err := c.Cookie(opts.CookieName); err == nil {
				userID = strings.TrimSpace(v)
			}
		}

		if userID == "" {
			userID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, userID, cookieMaxAgeSec, "/", "", false, true)
			if history != nil {
				if _, err := history.EnsureUser(c.Request.Context(), userID); err != nil {
					log.WithError(err).WithField("user_id", userID).Warn("Failed to record new user")
				}
			}
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the identity set by IdentityMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
