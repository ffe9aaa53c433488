package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string

	// Upstream contact-management service (Brevo)
	BrevoAPIKey  string
	BrevoBaseURL string

	// Mailing lists each lead may be added to
	ListLeads           int64
	ListEbookDownloads  int64
	ListDiagnosticUsers int64
	ListHotLeads        int64

	// RelayURL is where the lead submitter posts normalized contacts.
	RelayURL    string
	HTTPTimeout time.Duration

	// Analytics
	GAMeasurementID      string
	GAAPISecret          string
	GAEndpoint           string
	AdsConversionID      string
	ConversionCurrency   string
	AnalyticsSendTimeout time.Duration

	// Outbound links
	WhatsAppPhone   string
	WhatsAppMessage string
	DiagnosticURL   string
	EbookURL        string
	BlogURL         string
}

const defaultWhatsAppMessage = "Olá, vim do site de regularização financeira e gostaria de agendar uma conversa com Edmilson."

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	port := getEnv("PORT", "8080")

	return &Config{
		Port:           port,
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		BrevoBaseURL: getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),

		ListLeads:           getEnvInt("BREVO_LIST_LEADS", 1),
		ListEbookDownloads:  getEnvInt("BREVO_LIST_EBOOK_DOWNLOADS", 2),
		ListDiagnosticUsers: getEnvInt("BREVO_LIST_DIAGNOSTIC_USERS", 3),
		ListHotLeads:        getEnvInt("BREVO_LIST_HOT_LEADS", 4),

		RelayURL:    getEnv("RELAY_URL", "http://localhost:"+port+"/api/contacts"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		GAMeasurementID:      os.Getenv("GTAG_ID"),
		GAAPISecret:          os.Getenv("GA_API_SECRET"),
		GAEndpoint:           getEnv("GA_ENDPOINT", "https://www.google-analytics.com/mp/collect"),
		AdsConversionID:      os.Getenv("GOOGLE_ADS_CONVERSION_ID"),
		ConversionCurrency:   getEnv("CONVERSION_CURRENCY", "BRL"),
		AnalyticsSendTimeout: getEnvDuration("ANALYTICS_SEND_TIMEOUT", 5*time.Second),

		WhatsAppPhone:   getEnv("WHATSAPP_PHONE_NUMBER", "5511949695000"),
		WhatsAppMessage: getEnv("WHATSAPP_MESSAGE", defaultWhatsAppMessage),
		DiagnosticURL:   getEnv("DIAGNOSTICO_URL", "https://www.limaadvogados.adv.br/recuperacao-judicial"),
		EbookURL:        getEnv("EBOOK_URL", "https://www.limaadvogados.adv.br/ebook-regularizacao-financeira"),
		BlogURL:         getEnv("BLOG_BASE_URL", "https://blog.limaadvogados.adv.br"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
