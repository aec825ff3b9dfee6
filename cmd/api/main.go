package main

import (
	"fmt"
	"os"

	"github.com/wolfman30/whatsapp-ai-bot/cmd/mainconfig"
	"github.com/wolfman30/whatsapp-ai-bot/internal/conversation"
	"github.com/wolfman30/whatsapp-ai-bot/internal/messaging"
)

func main() {
	cfg, logger, err := mainconfig.Bootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Info("starting whatsapp ai bot",
		"env", cfg.Env,
		"port", cfg.Port,
	)
	mainconfig.LogEnvCheck(cfg, logger, cfg.MissingAI())

	webhookMetrics, reg := mainconfig.NewMetrics()

	llm := conversation.NewAzureLLMClient(conversation.AzureConfig{
		APIKey:     cfg.AzureOpenAIKey,
		Endpoint:   cfg.AzureOpenAIEndpoint,
		Deployment: cfg.AzureOpenAIDeployment,
		APIVersion: cfg.AzureOpenAIAPIVersion,
		Timeout:    cfg.AzureOpenAITimeout,
	})
	assistant := conversation.NewAssistant(llm, cfg.AzureOpenAIDeployment, webhookMetrics, logger)
	sender := mainconfig.NewTwilioSender(cfg, logger)

	handler := messaging.NewAIHandler(cfg.TwilioWhatsAppNumber, assistant, sender, webhookMetrics, logger)

	if err := mainconfig.Serve(cfg, logger, handler, reg); err != nil {
		os.Exit(1)
	}
	logger.Info("server stopped")
}
