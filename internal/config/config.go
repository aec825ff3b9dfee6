package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultStaticReply is what the dummy bot answers while the AI path is offline.
const DefaultStaticReply = "🤖 BOT IS WORKING – WEBHOOK OK! AI will be back in 1 minute."

// Config holds application configuration
type Config struct {
	Port        string `env:"PORT" env-default:"3000"`
	MetricsPort string `env:"METRICS_PORT"`
	Env         string `env:"ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// Twilio messaging
	TwilioSID            string `env:"TWILIO_SID"`
	TwilioToken          string `env:"TWILIO_TOKEN"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`
	TwilioAPIBaseURL     string `env:"TWILIO_API_BASE_URL" env-default:"https://api.twilio.com"`
	StaticReplyText      string `env:"STATIC_REPLY_TEXT"` // DefaultStaticReply when empty

	// Azure OpenAI completion
	AzureOpenAIKey        string        `env:"AZURE_OPENAI_KEY"`
	AzureOpenAIEndpoint   string        `env:"AZURE_OPENAI_ENDPOINT"`
	AzureOpenAIDeployment string        `env:"AZURE_OPENAI_DEPLOYMENT,DEPLOYMENT_NAME"`
	AzureOpenAIAPIVersion string        `env:"AZURE_OPENAI_API_VERSION" env-default:"2024-02-01"`
	AzureOpenAITimeout    time.Duration `env:"AZURE_OPENAI_TIMEOUT" env-default:"30s"`
}

// Load reads configuration from environment variables. Values are not
// validated here; see Missing.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if cfg.StaticReplyText == "" {
		cfg.StaticReplyText = DefaultStaticReply
	}
	return &cfg, nil
}

// Missing lists the messaging variables that are unset.
func (c *Config) Missing() []string {
	var missing []string
	if c.TwilioSID == "" {
		missing = append(missing, "TWILIO_SID")
	}
	if c.TwilioToken == "" {
		missing = append(missing, "TWILIO_TOKEN")
	}
	if c.TwilioWhatsAppNumber == "" {
		missing = append(missing, "TWILIO_WHATSAPP_NUMBER")
	}
	return missing
}

// MissingAI is Missing plus the completion provider variables.
func (c *Config) MissingAI() []string {
	missing := c.Missing()
	if c.AzureOpenAIKey == "" {
		missing = append(missing, "AZURE_OPENAI_KEY")
	}
	if c.AzureOpenAIEndpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if c.AzureOpenAIDeployment == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
	}
	return missing
}
