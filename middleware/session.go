package middleware

import (
	"net/http"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/models"
	"chucks-kitchen-api/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "chucks_cart_session"

const (
	ctxSession      = "session"
	ctxSessionStore = "sessionStore"
	ctxUser         = "currentUser"
)

// WithSession attaches the caller's session to the request context,
// creating a fresh one (and setting the cookie) when the token is
// missing or expired.
func WithSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if token, err := c.Cookie(SessionCookie); err == nil {
			sess, _ = store.Get(token)
		}
		if sess == nil {
			sess = store.Create()
			c.SetCookie(SessionCookie, sess.Token, int(store.TTL().Seconds()), "/", "", false, true)
		}
		c.Set(ctxSession, sess)
		c.Set(ctxSessionStore, store)
		c.Next()
	}
}

// AuthRequired rejects requests whose session has no logged-in user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).LoggedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired rejects logged-in callers that are not admins.
// Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession extracts the caller's session from context.
func GetSession(c *gin.Context) *session.Session {
	val, _ := c.Get(ctxSession)
	return val.(*session.Session)
}

// GetStore extracts the session store from context.
func GetStore(c *gin.Context) *session.Store {
	val, _ := c.Get(ctxSessionStore)
	return val.(*session.Store)
}

// GetUserID extracts the logged-in caller's user ID from the session.
// Only valid behind AuthRequired.
func GetUserID(c *gin.Context) uint {
	return *GetSession(c).UserID
}

// CurrentUser loads the logged-in caller's account, caching it on the
// request context so repeated checks share one query. Only valid
// behind AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, error) {
	if val, ok := c.Get(ctxUser); ok {
		return val.(*models.User), nil
	}
	var user models.User
	if err := config.DB.First(&user, GetUserID(c)).Error; err != nil {
		return nil, err
	}
	c.Set(ctxUser, &user)
	return &user, nil
}
