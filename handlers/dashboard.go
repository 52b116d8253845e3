package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mention-radar/database"
)

// Shown in the banner when no keyword is configured or loading fails.
var fallbackKeywords = []string{"eleições", "candidatos", "votação", "campanha", "política"}

type DashboardData struct {
	pageBase
	Keywords         []string
	FloatingKeywords []string
}

func (a *App) Dashboard(c *gin.Context) {
	terms, err := database.KeywordTerms(c.Request.Context(), a.Config.Limits.BannerKeywords)
	if err != nil {
		log.Printf("load banner keywords: %v", err)
	}
	if len(terms) == 0 {
		terms = fallbackKeywords
	}

	floating := terms
	if len(floating) > 3 {
		floating = floating[:3]
	}

	c.HTML(http.StatusOK, "dashboard.html", DashboardData{
		pageBase:         a.base(c, "Radar", "dashboard"),
		Keywords:         terms,
		FloatingKeywords: floating,
	})
}
