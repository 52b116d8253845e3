package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mention-radar/database"
	"mention-radar/mentions"
	"mention-radar/models"
	"mention-radar/pagination"
)

type KeywordsData struct {
	pageBase
	Page       pagination.Page[models.Keyword]
	Categories []string
}

type KeywordDetailData struct {
	pageBase
	Keyword      models.Keyword
	MentionCount int
	CountFailed  bool
	BackPage     int
}

type keywordRequest struct {
	Termo     string `json:"termo" form:"termo"`
	Categoria string `json:"categoria" form:"categoria"`
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	return page
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// countKeywordMentions loads the bounded mention batch and counts the
// records mentioning termo.
func (a *App) countKeywordMentions(ctx context.Context, termo string) (int, error) {
	records, err := database.ListMentions(ctx, database.MentionQuery{Limit: a.Config.Limits.MentionScan})
	if err != nil {
		return 0, err
	}
	a.Metrics.ObserveMatchScan(len(records))
	return mentions.CountMatches(records, termo), nil
}

func (a *App) KeywordsPage(c *gin.Context) {
	keywords, err := database.ListKeywords(c.Request.Context(), 0)
	if err != nil {
		log.Printf("Erro ao carregar palavras-chave: %v", err)
		a.notifyError(c, "Erro ao carregar palavras-chave")
	}

	c.HTML(http.StatusOK, "keywords.html", KeywordsData{
		pageBase:   a.base(c, "Palavras-chave", "keywords"),
		Page:       pagination.Paginate(keywords, pageParam(c), a.Config.Display.PageSize),
		Categories: models.KeywordCategories,
	})
}

func (a *App) AddKeyword(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("Erro ao ler formulário de palavra-chave: %v", err)
		a.notifyError(c, "Erro ao adicionar palavra-chave")
		c.Redirect(http.StatusSeeOther, "/dashboard/keywords")
		return
	}

	_, err := database.CreateKeyword(c.Request.Context(), req.Termo, req.Categoria)
	switch {
	case errors.Is(err, database.ErrEmptyKeyword):
		a.notifyError(c, "Digite uma palavra-chave")
	case err != nil:
		log.Printf("Erro ao adicionar palavra-chave: %v", err)
		a.notifyError(c, "Erro ao adicionar palavra-chave")
	default:
		a.notifySuccess(c, "Palavra-chave adicionada com sucesso")
	}
	// New keywords appear on the first page.
	c.Redirect(http.StatusSeeOther, "/dashboard/keywords")
}

func (a *App) RemoveKeyword(c *gin.Context) {
	back := pageParam(c)
	id, ok := idParam(c)
	if !ok {
		a.notifyError(c, "Palavra-chave inválida")
		c.Redirect(http.StatusSeeOther, "/dashboard/keywords")
		return
	}

	if err := database.DeleteKeyword(c.Request.Context(), id); err != nil {
		log.Printf("Erro ao remover palavra-chave %d: %v", id, err)
		a.notifyError(c, "Erro ao remover palavra-chave")
	} else {
		a.notifySuccess(c, "Palavra-chave removida com sucesso")
	}
	// The page number is clamped on render if the last page emptied.
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/dashboard/keywords?page=%d", back))
}

func (a *App) KeywordDetailPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Palavra-chave não encontrada"})
		return
	}
	keyword, err := database.GetKeyword(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Palavra-chave não encontrada"})
			return
		}
		log.Printf("load keyword %d: %v", id, err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Erro ao carregar palavra-chave"})
		return
	}

	data := KeywordDetailData{
		pageBase: a.base(c, "Detalhes: "+keyword.Termo, "keywords"),
		Keyword:  keyword,
		BackPage: pageParam(c),
	}
	count, err := a.countKeywordMentions(c.Request.Context(), keyword.Termo)
	if err != nil {
		log.Printf("Erro ao contar mensagens: %v", err)
		data.CountFailed = true
	}
	data.MentionCount = count

	c.HTML(http.StatusOK, "keyword_detail.html", data)
}

// JSON API

func (a *App) GetKeywords(c *gin.Context) {
	keywords, err := database.ListKeywords(c.Request.Context(), 0)
	if err != nil {
		log.Printf("list keywords: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar palavras-chave"})
		return
	}
	c.JSON(http.StatusOK, pagination.Paginate(keywords, pageParam(c), a.Config.Display.PageSize))
}

func (a *App) CreateKeyword(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	keyword, err := database.CreateKeyword(c.Request.Context(), req.Termo, req.Categoria)
	if errors.Is(err, database.ErrEmptyKeyword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Digite uma palavra-chave"})
		return
	}
	if err != nil {
		log.Printf("create keyword: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao adicionar palavra-chave"})
		return
	}
	c.JSON(http.StatusCreated, keyword)
}

func (a *App) DeleteKeyword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	err := database.DeleteKeyword(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keyword not found"})
		return
	}
	if err != nil {
		log.Printf("delete keyword %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover palavra-chave"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *App) GetKeywordMentionCount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	keyword, err := database.GetKeyword(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Keyword not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	count, err := a.countKeywordMentions(c.Request.Context(), keyword.Termo)
	if err != nil {
		log.Printf("count mentions for %q: %v", keyword.Termo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao contar mensagens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keyword": keyword, "count": count})
}
