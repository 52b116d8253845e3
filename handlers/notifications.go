package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

func (a *App) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, a.Notes.List(sessionToken(c)))
}

func (a *App) DeleteNotification(c *gin.Context) {
	if !a.Notes.Dismiss(sessionToken(c), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DismissNotification closes a notification from a page and returns to it.
func (a *App) DismissNotification(c *gin.Context) {
	a.Notes.Dismiss(sessionToken(c), c.Param("id"))
	back := "/dashboard"
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" && ref.Host == c.Request.Host {
		back = ref.RequestURI()
	}
	c.Redirect(http.StatusSeeOther, back)
}
