package tracking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/metrics"
	"github.com/limaadvogados/leadrelay/pkg/models"
)

// Dispatch commands understood by a Binding.
const (
	CommandConfig = "config"
	CommandEvent  = "event"
)

// Conversion labels configured in the ads account.
const (
	LabelWhatsAppClick   = "whatsapp_click"
	LabelEbookDownload   = "ebook_download"
	LabelDiagnosticClick = "diagnostic_click"
	LabelCTAClick        = "cta_click"
	LabelFormSubmit      = "form_submit"
)

// Event categories.
const (
	CategoryEngagement     = "engagement"
	CategoryLeadGeneration = "lead_generation"
	CategoryContent        = "content"
)

// helperEvents are the event names sent by the helpers below. Any other name
// comes from the browser and is counted as "custom".
var helperEvents = map[string]bool{
	"page_view":        true,
	"cta_click":        true,
	"diagnostic_click": true,
	"ebook_download":   true,
	"form_submit":      true,
	"blog_link_click":  true,
	"whatsapp_click":   true,
	"scroll_depth":     true,
	"time_on_page":     true,
	"conversion":       true,
}

func metricLabel(name string) string {
	if helperEvents[name] {
		return name
	}
	return "custom"
}

// Binding delivers a tag command to the analytics service. Implementations
// must not block the caller.
type Binding interface {
	Dispatch(clientID, command, target string, params map[string]any)
}

// Config identifies the analytics property and ads account. It is built once
// at startup and never changed.
type Config struct {
	MeasurementID   string
	AdsConversionID string
	Currency        string
}

// Tracker sends engagement and conversion events. Every method is safe to
// call when analytics is not configured; it then does nothing.
type Tracker struct {
	cfg      Config
	binding  Binding
	clientID string
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// New creates a tracker. binding may be nil.
func New(cfg Config, binding Binding, m *metrics.Metrics, log *logger.Logger) *Tracker {
	if cfg.Currency == "" {
		cfg.Currency = "BRL"
	}
	return &Tracker{cfg: cfg, binding: binding, metrics: m, log: log}
}

// WithClient returns a copy of the tracker that attributes events to clientID.
func (t *Tracker) WithClient(clientID string) *Tracker {
	if t == nil {
		return nil
	}
	c := *t
	c.clientID = clientID
	return &c
}

// Enabled reports whether events are actually sent.
func (t *Tracker) Enabled() bool {
	return t != nil && t.binding != nil && t.cfg.MeasurementID != ""
}

// Track sends a generic event.
func (t *Tracker) Track(ev models.TrackedEvent) {
	if !t.Enabled() {
		if t != nil {
			t.metrics.ObserveEvent(metricLabel(ev.Name), false)
		}
		return
	}

	params := map[string]any{
		"event_category": ev.Category,
		"event_label":    ev.Label,
		"value":          ev.Value,
	}
	for k, v := range ev.CustomParameters {
		params[k] = v
	}

	t.dispatch(CommandEvent, ev.Name, params)
	t.metrics.ObserveEvent(metricLabel(ev.Name), true)
}

// trackConversion sends an ads conversion when an ads account is configured.
func (t *Tracker) trackConversion(label string, custom map[string]any) {
	if !t.Enabled() || t.cfg.AdsConversionID == "" {
		return
	}

	params := map[string]any{
		"send_to":        t.cfg.AdsConversionID + "/" + label,
		"value":          1,
		"currency":       t.cfg.Currency,
		"transaction_id": "conv_" + uuid.NewString(),
	}
	for k, v := range custom {
		params[k] = v
	}

	t.dispatch(CommandEvent, "conversion", params)
	t.metrics.ObserveEvent("conversion", true)
}

func (t *Tracker) dispatch(command, target string, params map[string]any) {
	defer func() {
		if r := recover(); r != nil && t.log != nil {
			t.log.Warnw("analytics dispatch panicked", "target", target, "panic", fmt.Sprint(r))
		}
	}()
	t.binding.Dispatch(t.clientID, command, target, params)
}

// PageView records a page view for path.
func (t *Tracker) PageView(path, title, location string) {
	if !t.Enabled() {
		return
	}
	t.dispatch(CommandConfig, t.cfg.MeasurementID, map[string]any{
		"page_path":     path,
		"page_title":    title,
		"page_location": location,
	})
	t.metrics.ObserveEvent("page_view", true)
}

// CTAClick records a call-to-action click at location.
func (t *Tracker) CTAClick(ctaType, location string) {
	location = orUnknown(location)
	t.trackConversion(LabelCTAClick, map[string]any{
		"event_category": CategoryEngagement,
		"event_label":    ctaType,
		"cta_location":   location,
	})
	t.Track(models.TrackedEvent{
		Name:     "cta_click",
		Category: CategoryEngagement,
		Label:    ctaType + "_" + location,
	})
}

// HeroCTAClick records the scheduling button in the hero section.
func (t *Tracker) HeroCTAClick() {
	t.CTAClick("hero_agendamento", "hero")
}

// DiagnosticClick records a click through to the diagnostic tool.
func (t *Tracker) DiagnosticClick() {
	t.trackConversion(LabelDiagnosticClick, map[string]any{
		"event_category": CategoryEngagement,
		"event_label":    "diagnostic_click",
		"tool_type":      "diagnostic",
	})
	t.Track(models.TrackedEvent{
		Name:     "diagnostic_click",
		Category: CategoryEngagement,
		Label:    "diagnostic_tool",
	})
}

// EbookDownload records a completed eBook form. leadKey identifies the lead
// without exposing the email.
func (t *Tracker) EbookDownload(leadKey string) {
	custom := map[string]any{
		"event_category": CategoryLeadGeneration,
		"event_label":    "ebook_download",
		"lead_type":      "ebook",
	}
	if leadKey != "" {
		custom["lead_id"] = leadKey
	}
	t.trackConversion(LabelEbookDownload, custom)
	t.Track(models.TrackedEvent{
		Name:     "ebook_download",
		Category: CategoryLeadGeneration,
		Label:    "ebook_download",
	})
}

// FormSubmission records any successful lead form.
func (t *Tracker) FormSubmission(formType string) {
	t.trackConversion(LabelFormSubmit, map[string]any{
		"event_category": CategoryLeadGeneration,
		"event_label":    formType,
		"form_type":      formType,
	})
	t.Track(models.TrackedEvent{
		Name:     "form_submit",
		Category: CategoryLeadGeneration,
		Label:    formType,
	})
}

// BlogLinkClick records a click on an article link.
func (t *Tracker) BlogLinkClick(articleTitle, linkURL string) {
	t.Track(models.TrackedEvent{
		Name:     "blog_link_click",
		Category: CategoryContent,
		Label:    articleTitle,
		CustomParameters: map[string]any{
			"link_url":     linkURL,
			"content_type": "blog_article",
		},
	})
}

// WhatsAppClick records a click on a WhatsApp link placed at source.
func (t *Tracker) WhatsAppClick(source string) {
	source = orUnknown(source)
	t.trackConversion(LabelWhatsAppClick, map[string]any{
		"source":         source,
		"event_category": CategoryEngagement,
		"event_label":    "whatsapp_click",
	})
	t.Track(models.TrackedEvent{
		Name:     "whatsapp_click",
		Category: CategoryEngagement,
		Label:    source,
	})
}

// ScrollDepth records how far down the page the visitor scrolled.
func (t *Tracker) ScrollDepth(percentage int) {
	t.Track(models.TrackedEvent{
		Name:     "scroll_depth",
		Category: CategoryEngagement,
		Label:    fmt.Sprintf("%d%%", percentage),
		Value:    float64(percentage),
	})
}

// TimeOnPage records seconds spent on the page.
func (t *Tracker) TimeOnPage(seconds int) {
	t.Track(models.TrackedEvent{
		Name:     "time_on_page",
		Category: CategoryEngagement,
		Value:    float64(seconds),
	})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
