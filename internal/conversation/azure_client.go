package conversation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultAzureAPIVersion = "2024-02-01"
	defaultAzureTimeout    = 30 * time.Second
)

// ErrNoChoices is returned when the provider answers without any completion choice.
var ErrNoChoices = errors.New("conversation: completion returned no choices")

// AzureConfig describes an Azure OpenAI deployment.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	Deployment string
	APIVersion string
	Timeout    time.Duration
	// HTTPClient overrides the transport; the api_key header is still added.
	HTTPClient *http.Client
}

// AzureLLMClient implements LLMClient against an Azure OpenAI chat deployment.
type AzureLLMClient struct {
	client     *openai.Client
	deployment string
}

// NewAzureLLMClient builds a client. The key and endpoint are not checked so
// that a misconfigured process still starts; calls fail instead.
func NewAzureLLMClient(cfg AzureConfig) *AzureLLMClient {
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAzureTimeout
	}

	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}

	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, strings.TrimRight(cfg.Endpoint, "/"))
	clientCfg.APIVersion = apiVersion
	// Deployment names are used verbatim; the library default strips dots.
	clientCfg.AzureModelMapperFunc = func(model string) string { return model }
	clientCfg.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: &apiKeyTransport{key: cfg.APIKey, base: base},
	}

	return &AzureLLMClient{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: cfg.Deployment,
	}
}

// Complete sends one chat completion and returns the first choice.
func (c *AzureLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	model := req.Model
	if model == "" {
		model = c.deployment
	}
	if strings.TrimSpace(model) == "" {
		return LLMResponse{}, errors.New("conversation: azure deployment is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.System)+len(req.Messages))
	for _, system := range req.System {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	if len(messages) == 0 {
		return LLMResponse{}, errors.New("conversation: azure requires at least one message")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return LLMResponse{}, fmt.Errorf("conversation: azure completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, ErrNoChoices
	}

	choice := resp.Choices[0]
	return LLMResponse{
		Text:       choice.Message.Content,
		StopReason: string(choice.FinishReason),
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// apiKeyTransport adds the api_key header some Azure AI Foundry gateways
// expect in addition to the standard api-key header.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("api_key", t.key)
	return t.base.RoundTrip(clone)
}
