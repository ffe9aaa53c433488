package api

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/limaadvogados/leadrelay/pkg/integrations"
	"github.com/limaadvogados/leadrelay/pkg/leads"
	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/metrics"
	"github.com/limaadvogados/leadrelay/pkg/models"
	"github.com/limaadvogados/leadrelay/pkg/services"
	"github.com/limaadvogados/leadrelay/pkg/tracking"
	"github.com/limaadvogados/leadrelay/pkg/utils"
	"github.com/limaadvogados/leadrelay/pkg/validator"
)

// Messages returned to the browser. Upstream detail never reaches the caller.
const (
	msgInvalidJSON      = "invalid JSON payload"
	msgRequiredFields   = "email and name are required"
	msgRelayFailed      = "failed to process request"
	msgContactCreated   = "contact created"
	msgSubmissionFailed = "failed to submit form, please try again"
)

// maxTimeOnPage caps reported seconds on page at one day.
const maxTimeOnPage = 24 * 60 * 60

// LeadSubmitter sends a validated form to the relay endpoint.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, input models.LeadFormInput, origin models.Origin) models.SubmissionResult
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	relay     services.ContactRelay
	submitter LeadSubmitter
	tracker   *tracking.Tracker
	links     *integrations.Links
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	relay services.ContactRelay,
	submitter LeadSubmitter,
	tracker *tracking.Tracker,
	links *integrations.Links,
	m *metrics.Metrics,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		relay:     relay,
		submitter: submitter,
		tracker:   tracker,
		links:     links,
		metrics:   m,
		log:       log,
	}
}

// RegisterRoutes mounts every endpoint on r.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/contacts", h.HandleContactRelay)
	api.POST("/brevo/contact", h.HandleContactRelay)
	api.POST("/leads", h.HandleLeadSubmission)
	api.POST("/events", h.HandleTrackEvent)
	api.GET("/links", h.GetLinks)
	api.GET("/phone/format", h.FormatPhone)

	out := r.Group("/go")
	out.GET("/whatsapp", h.RedirectWhatsApp)
	out.GET("/diagnostic", h.RedirectDiagnostic)
	out.GET("/ebook", h.RedirectEbook)
	out.GET("/blog", h.RedirectBlog)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleContactRelay forwards a normalized contact to the upstream contact
// service, updating it in place when it already exists.
func (h *Handlers) HandleContactRelay(c *gin.Context) {
	var contact models.NormalizedContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		h.log.Debugw("relay payload rejected", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}

	if errs := validator.Validate(&contact); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgRequiredFields})
		return
	}

	outcome := h.relay.Relay(c.Request.Context(), contact)

	switch outcome.Kind {
	case services.OutcomeCreated:
		c.JSON(http.StatusOK, models.RelayResponse{
			Success: true,
			ID:      outcome.ContactID,
			Message: msgContactCreated,
		})
	case services.OutcomeUpdated, services.OutcomeUpdatedAfterDuplicate:
		c.JSON(http.StatusOK, models.RelayResponse{Success: true, Updated: true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgRelayFailed})
	}
}

// HandleLeadSubmission validates a landing page form and submits it.
func (h *Handlers) HandleLeadSubmission(c *gin.Context) {
	var req models.LeadSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{msgInvalidJSON}})
		return
	}

	validation := leads.Validate(req.LeadFormInput)
	if !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Errors})
		return
	}

	originLabel := string(req.Origin)
	if !req.Origin.Valid() {
		h.log.Warnw("lead with unknown origin", "origin", req.Origin)
		originLabel = "other"
	}

	result := h.submitter.SubmitLead(c.Request.Context(), req.LeadFormInput, req.Origin)
	if !result.Success {
		h.metrics.ObserveSubmission(originLabel, "failure")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": msgSubmissionFailed})
		return
	}
	h.metrics.ObserveSubmission(originLabel, "success")

	tracker := h.tracker.WithClient(req.ClientID)
	tracker.FormSubmission(originLabel)

	resp := gin.H{"success": true}
	if req.Origin == models.OriginEbook {
		tracker.EbookDownload(utils.HashString(utils.NormalizeEmail(req.Email)))
		resp["download_url"] = h.links.External().Ebook
	}

	c.JSON(http.StatusOK, resp)
}

// HandleTrackEvent accepts browser-side engagement events. It always
// answers 202; analytics problems are never reported to the page.
func (h *Handlers) HandleTrackEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debugw("event payload ignored", "error", err)
		c.Status(http.StatusAccepted)
		return
	}

	tracker := h.tracker.WithClient(req.ClientID)

	switch req.Event {
	case "page_view":
		tracker.PageView(req.Path, req.Title, req.URL)
	case "hero_cta_click":
		tracker.HeroCTAClick()
	case "cta_click":
		tracker.CTAClick(req.Label, req.Location)
	case "diagnostic_click":
		tracker.DiagnosticClick()
	case "blog_link_click":
		tracker.BlogLinkClick(req.Title, req.URL)
	case "whatsapp_click":
		tracker.WhatsAppClick(req.Source)
	case "scroll_depth":
		tracker.ScrollDepth(int(clamp(req.Value, 0, 100)))
	case "time_on_page":
		tracker.TimeOnPage(int(clamp(req.Value, 0, maxTimeOnPage)))
	default:
		category := req.Category
		if category == "" {
			category = tracking.CategoryEngagement
		}
		tracker.Track(models.TrackedEvent{
			Name:     req.Event,
			Category: category,
			Label:    req.Label,
			Value:    req.Value,
		})
	}

	c.Status(http.StatusAccepted)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetLinks returns the outbound URLs used by the page.
func (h *Handlers) GetLinks(c *gin.Context) {
	urls := h.links.External()
	c.JSON(http.StatusOK, gin.H{
		"whatsapp":   h.links.WhatsAppURL(c.Query("text")),
		"diagnostic": urls.Diagnostic,
		"ebook":      urls.Ebook,
		"blog":       urls.Blog,
	})
}

// FormatPhone formats a phone number as the visitor types it.
func (h *Handlers) FormatPhone(c *gin.Context) {
	value := c.Query("value")
	c.JSON(http.StatusOK, gin.H{
		"formatted": leads.FormatPhone(value),
		"valid":     leads.IsValidPhone(value),
	})
}

// RedirectWhatsApp records the click and sends the visitor to WhatsApp.
func (h *Handlers) RedirectWhatsApp(c *gin.Context) {
	h.tracker.WithClient(c.Query("cid")).WhatsAppClick(c.Query("source"))
	c.Redirect(http.StatusFound, h.links.WhatsAppURL(c.Query("text")))
}

// RedirectDiagnostic records the click and opens the diagnostic tool.
func (h *Handlers) RedirectDiagnostic(c *gin.Context) {
	h.tracker.WithClient(c.Query("cid")).DiagnosticClick()
	c.Redirect(http.StatusFound, h.links.External().Diagnostic)
}

// RedirectEbook opens the eBook landing page.
func (h *Handlers) RedirectEbook(c *gin.Context) {
	h.tracker.WithClient(c.Query("cid")).CTAClick("ebook_page", c.Query("source"))
	c.Redirect(http.StatusFound, h.links.External().Ebook)
}

// RedirectBlog opens a blog article. Targets outside the blog fall back to
// the blog home.
func (h *Handlers) RedirectBlog(c *gin.Context) {
	blog := h.links.External().Blog
	target := c.Query("url")
	if target == "" || !strings.HasPrefix(target, strings.TrimRight(blog, "/")+"/") {
		target = blog
	}

	title := c.Query("title")
	if title == "" {
		title = "blog"
	}

	h.tracker.WithClient(c.Query("cid")).BlogLinkClick(title, target)
	c.Redirect(http.StatusFound, target)
}
