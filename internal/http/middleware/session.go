package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-backend/internal/domain/models"
	"booking-backend/internal/repositories"
	"booking-backend/internal/session"
)

// SessionCookie is the HTTP-only cookie carrying the session token.
const SessionCookie = "sessionId"

const currentUserKey = "current_user"

// RequireLogin resolves the session cookie against the store and loads
// the owning user. Requests without a usable session get a 401.
func RequireLogin(store *session.Store, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			abortUnauthorized(c)
			return
		}
		userID, ok := store.Resolve(sid)
		if !ok {
			abortUnauthorized(c)
			return
		}
		user, err := users.GetByID(userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Harus login",
	})
}

// CurrentUser returns the user loaded by RequireLogin.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
