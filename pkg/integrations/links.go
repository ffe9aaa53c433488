package integrations

import (
	"net/url"
	"strings"

	"github.com/limaadvogados/leadrelay/pkg/config"
)

// ExternalURLs are the content pages the landing page links out to.
type ExternalURLs struct {
	Diagnostic string `json:"diagnostic"`
	Ebook      string `json:"ebook"`
	Blog       string `json:"blog"`
}

// Links builds outbound URLs from configuration.
type Links struct {
	whatsAppPhone   string
	whatsAppMessage string
	urls            ExternalURLs
}

// NewLinks creates link helpers from the loaded configuration
func NewLinks(cfg *config.Config) *Links {
	return &Links{
		whatsAppPhone:   cfg.WhatsAppPhone,
		whatsAppMessage: cfg.WhatsAppMessage,
		urls: ExternalURLs{
			Diagnostic: cfg.DiagnosticURL,
			Ebook:      cfg.EbookURL,
			Blog:       cfg.BlogURL,
		},
	}
}

// WhatsAppURL returns a wa.me deep link with message prefilled. An empty
// message uses the configured default.
func (l *Links) WhatsAppURL(message string) string {
	if strings.TrimSpace(message) == "" {
		message = l.whatsAppMessage
	}
	return "https://wa.me/" + l.whatsAppPhone + "?text=" + encodeURIComponent(message)
}

// External returns the diagnostic, eBook and blog URLs.
func (l *Links) External() ExternalURLs {
	return l.urls
}

// encodeURIComponent escapes s the way browsers do for a query component:
// spaces become %20 rather than '+'.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
