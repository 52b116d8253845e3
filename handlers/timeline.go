package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mention-radar/database"
	"mention-radar/mentions"
	"mention-radar/pagination"
)

const maxIngestBody = 8 << 20

type TimelineData struct {
	pageBase
	Page     pagination.Page[mentions.Event]
	From     string
	To       string
	Filtered bool
	Range    string
}

type MentionDetailData struct {
	pageBase
	Event        mentions.Event
	Report       string
	Phone        string
	WhatsAppLink string
	BackURL      string
}

// mentionDetail is the JSON shape of a single mention.
type mentionDetail struct {
	Event        mentions.Event `json:"event"`
	Report       string         `json:"report"`
	Phone        string         `json:"phone,omitempty"`
	WhatsAppLink string         `json:"whatsapp_link,omitempty"`
}

// loadTimeline fetches mentions in the date range and normalizes them. The
// store filters on the indexed timestamp; the range is applied once more in
// memory using the record's own created_at/data precedence.
func (a *App) loadTimeline(ctx context.Context, rng mentions.DateRange) ([]mentions.Event, error) {
	records, err := database.ListMentions(ctx, database.MentionQuery{
		Range: rng,
		Limit: a.Config.Limits.TimelineFetch,
	})
	if err != nil {
		return nil, err
	}
	records = rng.Filter(records, a.loc)
	events := mentions.NormalizeAll(records, a.Now(), a.loc)
	a.Metrics.ObserveNormalized(len(events))
	return events, nil
}

func (a *App) TimelinePage(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	data := TimelineData{From: from, To: to}

	rng, err := mentions.ParseDateRange(from, to, a.loc)
	if err != nil {
		a.notifyError(c, "Data inválida: "+err.Error())
		rng = mentions.DateRange{}
	}
	data.Filtered = !rng.IsZero()
	data.Range = rng.Describe()

	events, err := a.loadTimeline(c.Request.Context(), rng)
	if err != nil {
		log.Printf("Erro ao carregar menções: %v", err)
		a.notifyError(c, "Erro ao carregar menções: "+err.Error())
	}
	data.Page = pagination.Paginate(events, pageParam(c), a.Config.Display.PageSize)
	data.pageBase = a.base(c, "Timeline", "timeline")

	c.HTML(http.StatusOK, "timeline.html", data)
}

func (a *App) describeMention(ctx context.Context, id int64) (mentionDetail, error) {
	rec, err := database.GetMention(ctx, id)
	if err != nil {
		return mentionDetail{}, err
	}
	d := mentionDetail{
		Event:  mentions.Normalize(rec, 0, a.Now(), a.loc),
		Report: mentions.Flatten(rec, a.loc),
	}
	if phone, ok := mentions.ExtractPhone(rec, a.Config.Phone.DefaultCountryCode); ok {
		d.Phone = phone
		d.WhatsAppLink = mentions.WhatsAppLink(phone, rec)
	}
	return d, nil
}

func (a *App) MentionDetailPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Menção não encontrada"})
		return
	}
	d, err := a.describeMention(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Menção não encontrada"})
			return
		}
		log.Printf("load mention %d: %v", id, err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Erro ao carregar menção"})
		return
	}

	back := "/dashboard/timeline"
	if q := c.Request.URL.RawQuery; q != "" {
		back += "?" + q
	}
	c.HTML(http.StatusOK, "mention_detail.html", MentionDetailData{
		pageBase:     a.base(c, "Detalhes da Menção", "timeline"),
		Event:        d.Event,
		Report:       d.Report,
		Phone:        d.Phone,
		WhatsAppLink: d.WhatsAppLink,
		BackURL:      back,
	})
}

// JSON API

func (a *App) GetMentions(c *gin.Context) {
	rng, err := mentions.ParseDateRange(c.Query("from"), c.Query("to"), a.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, err := a.loadTimeline(c.Request.Context(), rng)
	if err != nil {
		log.Printf("list mentions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar menções"})
		return
	}
	c.JSON(http.StatusOK, pagination.Paginate(events, pageParam(c), a.Config.Display.PageSize))
}

func (a *App) mentionOrAbort(c *gin.Context) (mentionDetail, bool) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return mentionDetail{}, false
	}
	d, err := a.describeMention(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mention not found"})
		return mentionDetail{}, false
	}
	if err != nil {
		log.Printf("load mention %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return mentionDetail{}, false
	}
	return d, true
}

func (a *App) GetMention(c *gin.Context) {
	d, ok := a.mentionOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetMentionText serves the report for the clipboard action.
func (a *App) GetMentionText(c *gin.Context) {
	d, ok := a.mentionOrAbort(c)
	if !ok {
		return
	}
	a.Metrics.ObserveExport("copy")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(d.Report))
}

// ExportMention serves the same report as a file download.
func (a *App) ExportMention(c *gin.Context) {
	d, ok := a.mentionOrAbort(c)
	if !ok {
		return
	}
	name := mentions.ExportFileName(d.Event.Raw, a.Now())
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	a.Metrics.ObserveExport("download")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(d.Report))
}

// IngestMentions stores records posted by the scraper. The body is a JSON
// object, a JSON array of objects, or JSON lines.
func (a *App) IngestMentions(c *gin.Context) {
	token := a.Config.Ingest.Token
	if token == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "ingestion disabled"})
		return
	}
	given := c.GetHeader("X-Ingest-Token")
	if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ingest token"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxIngestBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	records, err := mentions.ParseRecords(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no records"})
		return
	}

	n, err := database.InsertMentions(c.Request.Context(), records, a.loc)
	if err != nil {
		log.Printf("ingest mentions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store mentions"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": n})
}
