package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/wolfman30/whatsapp-ai-bot/internal/http/middleware"
	"github.com/wolfman30/whatsapp-ai-bot/internal/messaging"
	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	MessagingHandler *messaging.Handler
}

// New creates the webhook router. POST /webhook is the only route.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	r.Use(middleware.Recoverer)

	r.Post("/webhook", cfg.MessagingHandler.Webhook)

	return r
}

// NewMetrics creates the router for the separate metrics listener.
func NewMetrics(metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", metricsHandler)
	return r
}
