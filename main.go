package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/limaadvogados/leadrelay/pkg/api"
	"github.com/limaadvogados/leadrelay/pkg/clients/brevo"
	"github.com/limaadvogados/leadrelay/pkg/clients/ga4"
	"github.com/limaadvogados/leadrelay/pkg/config"
	"github.com/limaadvogados/leadrelay/pkg/integrations"
	"github.com/limaadvogados/leadrelay/pkg/leads"
	"github.com/limaadvogados/leadrelay/pkg/logger"
	"github.com/limaadvogados/leadrelay/pkg/metrics"
	"github.com/limaadvogados/leadrelay/pkg/middleware"
	"github.com/limaadvogados/leadrelay/pkg/services"
	"github.com/limaadvogados/leadrelay/pkg/tracking"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	appLog, err := logger.New("leadrelay", cfg.Environment)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer appLog.SafeSync()

	if cfg.BrevoAPIKey == "" {
		appLog.Warn("BREVO_API_KEY is not set, contact relay calls will be rejected upstream")
	}

	m := metrics.New()

	// Initialize API clients
	brevoClient := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoBaseURL, cfg.HTTPTimeout, appLog.Named("brevo"))

	var binding tracking.Binding
	if cfg.GAMeasurementID != "" && cfg.GAAPISecret != "" {
		binding = ga4.NewClient(cfg.GAEndpoint, cfg.GAMeasurementID, cfg.GAAPISecret, cfg.AnalyticsSendTimeout, appLog.Named("ga4"))
	} else {
		appLog.Info("analytics not configured, events will be dropped")
	}

	// Initialize services
	relay := services.NewContactRelay(brevoClient, m, appLog.Named("relay"))

	submitter := leads.NewSubmitter(cfg.RelayURL, appLog.Named("submitter"),
		leads.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		leads.WithLists(leads.Lists{
			Leads:           cfg.ListLeads,
			EbookDownloads:  cfg.ListEbookDownloads,
			DiagnosticUsers: cfg.ListDiagnosticUsers,
			HotLeads:        cfg.ListHotLeads,
		}),
	)

	tracker := tracking.New(tracking.Config{
		MeasurementID:   cfg.GAMeasurementID,
		AdsConversionID: cfg.AdsConversionID,
		Currency:        cfg.ConversionCurrency,
	}, binding, m, appLog.Named("tracking"))

	links := integrations.NewLinks(cfg)

	// Set Gin to release mode in production
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(appLog.Named("http")))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize handlers
	handlers := api.NewHandlers(relay, submitter, tracker, links, m, appLog.Named("api"))

	// Register routes
	handlers.RegisterRoutes(router)

	// Start the server
	appLog.Infow("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLog.Fatalw("error starting server", "error", err)
	}
}
