package main

import (
	"fmt"
	"os"

	"github.com/wolfman30/whatsapp-ai-bot/cmd/mainconfig"
	"github.com/wolfman30/whatsapp-ai-bot/internal/messaging"
)

func main() {
	cfg, logger, err := mainconfig.Bootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Info("dummy bot starting", "env", cfg.Env, "port", cfg.Port)
	mainconfig.LogEnvCheck(cfg, logger, cfg.Missing())

	webhookMetrics, reg := mainconfig.NewMetrics()
	sender := mainconfig.NewTwilioSender(cfg, logger)
	handler := messaging.NewStaticHandler(cfg.TwilioWhatsAppNumber, cfg.StaticReplyText, sender, webhookMetrics, logger)

	if err := mainconfig.Serve(cfg, logger, handler, reg); err != nil {
		os.Exit(1)
	}
	logger.Info("dummy bot stopped")
}
