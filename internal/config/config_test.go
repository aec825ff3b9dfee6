package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "METRICS_PORT", "ENV", "LOG_LEVEL",
	"TWILIO_SID", "TWILIO_TOKEN", "TWILIO_WHATSAPP_NUMBER", "TWILIO_API_BASE_URL", "STATIC_REPLY_TEXT",
	"AZURE_OPENAI_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_DEPLOYMENT", "DEPLOYMENT_NAME",
	"AZURE_OPENAI_API_VERSION", "AZURE_OPENAI_TIMEOUT",
}

// unsetEnv clears keys for the test and restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "", cfg.MetricsPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.twilio.com", cfg.TwilioAPIBaseURL)
	assert.Equal(t, DefaultStaticReply, cfg.StaticReplyText)
	assert.Equal(t, "2024-02-01", cfg.AzureOpenAIAPIVersion)
	assert.Equal(t, 30*time.Second, cfg.AzureOpenAITimeout)
	assert.Equal(t, []string{"TWILIO_SID", "TWILIO_TOKEN", "TWILIO_WHATSAPP_NUMBER"}, cfg.Missing())
	assert.Len(t, cfg.MissingAI(), 6)
}

func TestLoadOverrides(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("PORT", "9090")
	t.Setenv("METRICS_PORT", "9091")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TWILIO_SID", "AC123")
	t.Setenv("TWILIO_TOKEN", "secret")
	t.Setenv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886")
	t.Setenv("AZURE_OPENAI_KEY", "key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://demo.openai.azure.com")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o-mini")
	t.Setenv("AZURE_OPENAI_TIMEOUT", "5s")
	t.Setenv("STATIC_REPLY_TEXT", "back soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "9091", cfg.MetricsPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "AC123", cfg.TwilioSID)
	assert.Equal(t, "whatsapp:+14155238886", cfg.TwilioWhatsAppNumber)
	assert.Equal(t, "gpt-4o-mini", cfg.AzureOpenAIDeployment)
	assert.Equal(t, 5*time.Second, cfg.AzureOpenAITimeout)
	assert.Equal(t, "back soon", cfg.StaticReplyText)
	assert.Empty(t, cfg.MissingAI())
}

func TestLoadEmptyStaticReplyFallsBack(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("STATIC_REPLY_TEXT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultStaticReply, cfg.StaticReplyText)
}

func TestLoadDeploymentAlias(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("DEPLOYMENT_NAME", "legacy-deploy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-deploy", cfg.AzureOpenAIDeployment)
}

func TestLoadInvalidTimeout(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("AZURE_OPENAI_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read env")
}
