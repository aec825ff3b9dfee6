package mainconfig

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wolfman30/whatsapp-ai-bot/internal/api/router"
	appconfig "github.com/wolfman30/whatsapp-ai-bot/internal/config"
	"github.com/wolfman30/whatsapp-ai-bot/internal/messaging"
	"github.com/wolfman30/whatsapp-ai-bot/internal/observability/metrics"
	"github.com/wolfman30/whatsapp-ai-bot/pkg/logging"
)

// Bootstrap loads .env (if present) and the environment so both binaries share
// the same startup path.
func Bootstrap() (*appconfig.Config, *logging.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := appconfig.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.LogLevel)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", envErr)
	}
	return cfg, logger, nil
}

// LogEnvCheck reports which settings were loaded, with secrets redacted.
func LogEnvCheck(cfg *appconfig.Config, logger *logging.Logger, missing []string) {
	logger.Info("env check",
		"twilio_sid", logging.Redact(cfg.TwilioSID),
		"twilio_token", logging.Redact(cfg.TwilioToken),
		"twilio_whatsapp_number", logging.OrMissing(cfg.TwilioWhatsAppNumber),
		"azure_openai_key", logging.Redact(cfg.AzureOpenAIKey),
		"azure_openai_endpoint", logging.OrMissing(cfg.AzureOpenAIEndpoint),
		"azure_openai_deployment", logging.OrMissing(cfg.AzureOpenAIDeployment),
	)
	if len(missing) > 0 {
		logger.Warn("configuration incomplete; affected calls will fail", "missing", missing)
	}
}

// NewTwilioSender builds the shared outbound messenger.
func NewTwilioSender(cfg *appconfig.Config, logger *logging.Logger) *messaging.TwilioSender {
	return messaging.NewTwilioSender(
		cfg.TwilioSID,
		cfg.TwilioToken,
		cfg.TwilioWhatsAppNumber,
		logger,
		messaging.WithTwilioBaseURL(cfg.TwilioAPIBaseURL),
	)
}

// NewMetrics registers the webhook metrics on a dedicated registry.
func NewMetrics() (*metrics.WebhookMetrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.NewWebhookMetrics(reg), reg
}

// Serve runs the webhook server, plus the metrics listener when configured,
// until SIGINT/SIGTERM.
func Serve(cfg *appconfig.Config, logger *logging.Logger, handler *messaging.Handler, reg prometheus.Gatherer) error {
	r := router.New(&router.Config{
		Logger:           logger,
		MessagingHandler: handler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	servers := []*http.Server{srv}

	if cfg.MetricsPort != "" {
		servers = append(servers, &http.Server{
			Addr:              ":" + cfg.MetricsPort,
			Handler:           router.NewMetrics(metrics.Handler(reg)),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			logger.Info("server listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(s)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "addr", s.Addr, "error", err)
			if serveErr == nil {
				serveErr = err
			}
		}
	}
	return serveErr
}
