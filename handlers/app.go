package handlers

import (
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mention-radar/auth"
	"mention-radar/config"
	"mention-radar/metrics"
	"mention-radar/models"
	"mention-radar/notify"
)

// App carries the collaborators shared by every handler.
type App struct {
	Config  config.Config
	Auth    *auth.Service
	Notes   *notify.Center
	Metrics *metrics.Metrics
	Now     func() time.Time

	loc *time.Location
}

func NewApp(cfg config.Config, authSvc *auth.Service, notes *notify.Center, m *metrics.Metrics) *App {
	return &App{
		Config:  cfg,
		Auth:    authSvc,
		Notes:   notes,
		Metrics: m,
		Now:     time.Now,
		loc:     cfg.Location(),
	}
}

// NewRouter wires middleware, templates and routes.
func NewRouter(a *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), a.Metrics.Middleware())

	// Static files and HTML templates
	if dir := a.Config.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			r.Static("/static", dir)
		}
	}
	r.SetFuncMap(templateFuncs(a.loc))
	r.LoadHTMLGlob(a.Config.Server.TemplatesGlob)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/health", a.Health)
	r.GET("/metrics", a.Metrics.Handler())

	r.GET("/login", a.LoginPage)
	r.POST("/login", a.Login)
	r.GET("/signup", a.SignupPage)
	r.POST("/signup", a.Signup)
	r.POST("/logout", a.Logout)

	dash := r.Group("/dashboard", a.RequireIdentity(), a.RequireProfile())
	{
		dash.GET("", a.Dashboard)
		dash.GET("/keywords", a.KeywordsPage)
		dash.POST("/keywords", a.AddKeyword)
		dash.GET("/keywords/:id", a.KeywordDetailPage)
		dash.POST("/keywords/:id/delete", a.RemoveKeyword)
		dash.GET("/timeline", a.TimelinePage)
		dash.GET("/timeline/:id", a.MentionDetailPage)
		dash.GET("/settings", a.SettingsPage)
		dash.POST("/settings", a.SaveSettings)
		dash.POST("/notifications/:id/dismiss", a.DismissNotification)
	}

	api := r.Group("/api")
	api.POST("/mentions", a.IngestMentions)

	authed := api.Group("", a.RequireIdentity())
	{
		authed.GET("/keywords", a.GetKeywords)
		authed.POST("/keywords", a.CreateKeyword)
		authed.DELETE("/keywords/:id", a.DeleteKeyword)
		authed.GET("/keywords/:id/mentions/count", a.GetKeywordMentionCount)
		authed.GET("/mentions", a.GetMentions)
		authed.GET("/mentions/:id", a.GetMention)
		authed.GET("/mentions/:id/text", a.GetMentionText)
		authed.GET("/mentions/:id/export", a.ExportMention)
		authed.GET("/notifications", a.GetNotifications)
		authed.DELETE("/notifications/:id", a.DeleteNotification)
	}

	return r
}

func templateFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"join":  strings.Join,
		"datetime": func(t time.Time) string {
			return t.In(loc).Format("02/01/2006 15:04")
		},
		"displayName": func(u *models.User) string {
			if u == nil {
				return ""
			}
			return u.DisplayName()
		},
	}
}

// pageBase is embedded in every page model rendered under /dashboard.
type pageBase struct {
	Title         string
	Active        string
	User          *models.User
	Notifications []notify.Notification
}

func (a *App) base(c *gin.Context, title, active string) pageBase {
	p := pageBase{
		Title:         title,
		Active:        active,
		Notifications: a.Notes.List(sessionToken(c)),
	}
	if u, ok := currentUser(c); ok {
		p.User = &u
	}
	return p
}

func (a *App) Health(c *gin.Context) {
	db, err := dbPing(c)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": db})
}
