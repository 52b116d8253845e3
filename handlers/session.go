package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mention-radar/auth"
	"mention-radar/database"
	"mention-radar/models"
)

const (
	sessionCookie = "radar_session"

	ctxIdentity = "identity"
	ctxUser     = "user"
	ctxToken    = "session_token"

	pingTimeout = 2 * time.Second
)

// RequireIdentity aborts requests without a live session: pages are
// redirected to /login, API calls get 401.
func (a *App) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		identity, err := a.Auth.CurrentIdentity(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				log.Printf("resolve session: %v", err)
			}
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ctxIdentity, identity)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// RequireProfile creates or fetches the dashboard profile of the identity.
// Without a profile the visitor is sent back to /login.
func (a *App) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		user, err := database.EnsureUserProfile(c.Request.Context(), identity)
		if err != nil {
			log.Printf("dashboard profile for %s: %v", identity.ID, err)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUser, user)
		c.Next()
	}
}

func currentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func sessionToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

func (a *App) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, maxAge, "/", "", a.Config.Auth.SecureCookie, true)
}

func (a *App) notifySuccess(c *gin.Context, message string) {
	a.Notes.Success(sessionToken(c), message)
}

func (a *App) notifyError(c *gin.Context, message string) {
	a.Notes.Error(sessionToken(c), message)
}

func dbPing(c *gin.Context) (string, error) {
	db := database.GetDB()
	if db == nil {
		return "", errors.New("database not initialised")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return "", err
	}
	return db.Dialector.Name(), nil
}
